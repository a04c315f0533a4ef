package dto

import (
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
)

// ApplicationDTO represents an application in API responses. PrivateStatus
// is populated only for reviewer-facing responses.
type ApplicationDTO struct {
	ID            uint64                    `json:"id"`
	RoleID        uint64                    `json:"role_id"`
	UserID        uint64                    `json:"user_id"`
	Status        models.ApplicationStatus  `json:"status"`
	PrivateStatus *models.ApplicationStatus `json:"private_status,omitempty"`
	Submitted     bool                      `json:"submitted"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// ToApplicationDTO converts an application to its applicant-facing DTO
func ToApplicationDTO(app models.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:        app.ID,
		RoleID:    app.RoleID,
		UserID:    app.UserID,
		Status:    app.Status,
		Submitted: app.Submitted,
		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	}
}

// ToReviewerApplicationDTO includes the private status
func ToReviewerApplicationDTO(app models.Application) ApplicationDTO {
	d := ToApplicationDTO(app)
	private := app.PrivateStatus
	d.PrivateStatus = &private
	return d
}

// CommentDTO represents a reviewer comment in API responses
type CommentDTO struct {
	ID            uint64    `json:"id"`
	ApplicationID uint64    `json:"application_id"`
	AuthorID      uint64    `json:"author_id"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToCommentDTO converts a comment to DTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:            comment.ID,
		ApplicationID: comment.ApplicationID,
		AuthorID:      comment.AuthorID,
		Body:          comment.Body,
		CreatedAt:     comment.CreatedAt,
	}
}

// RatingDTO represents a reviewer rating in API responses
type RatingDTO struct {
	ID            uint64    `json:"id"`
	ApplicationID uint64    `json:"application_id"`
	RaterID       uint64    `json:"rater_id"`
	Score         int       `json:"score"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToRatingDTO converts a rating to DTO
func ToRatingDTO(rating models.Rating) RatingDTO {
	return RatingDTO{
		ID:            rating.ID,
		ApplicationID: rating.ApplicationID,
		RaterID:       rating.RaterID,
		Score:         rating.Score,
		CreatedAt:     rating.CreatedAt,
	}
}
