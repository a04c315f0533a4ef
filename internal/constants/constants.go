package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Session
const (
	SessionCookieName = "recruitd_session"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Validation limits
const (
	MinPasswordLength   = 8
	MaxQuestionOptions  = 50
	DefaultAnswerBytes  = 4096
	MinRatingScore      = 1
	MaxRatingScore      = 5
)
