package repository

import (
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// OrganisationRepository defines the interface for organisation data access
type OrganisationRepository interface {
	// Create creates a new organisation
	Create(org *models.Organisation) error

	// FindByID finds an organisation by ID
	FindByID(id uint64) (*models.Organisation, error)

	// FindByInviteCode finds an organisation by invite code
	FindByInviteCode(code string) (*models.Organisation, error)

	// Update updates an organisation
	Update(org *models.Organisation) error

	// Delete deletes an organisation and all data it owns
	Delete(id uint64) error

	// AddMember adds a member to an organisation
	AddMember(member *models.Membership) error

	// RemoveMember removes a member from an organisation
	RemoveMember(organisationID, userID uint64) error

	// FindMember finds a specific membership
	FindMember(organisationID, userID uint64) (*models.Membership, error)

	// SetMemberLevel updates a member's admin level
	SetMemberLevel(organisationID, userID uint64, level models.AdminLevel) error

	// ListMembersByUserID lists all organisations a user is a member of
	ListMembersByUserID(userID uint64) ([]models.Membership, error)

	// ListMembers lists all members of an organisation
	ListMembers(organisationID uint64) ([]models.Membership, error)
}

// CampaignRepository defines the interface for campaign data access
type CampaignRepository interface {
	// Create creates a new campaign
	Create(campaign *models.Campaign) error

	// FindByID finds a campaign by ID
	FindByID(id uint64, preload ...string) (*models.Campaign, error)

	// Update updates a campaign
	Update(campaign *models.Campaign) error

	// Delete deletes a campaign and everything it owns
	Delete(id uint64) error

	// ListByOrganisation lists campaigns of an organisation
	ListByOrganisation(organisationID uint64) ([]models.Campaign, error)

	// ListOpen lists a page of published campaigns open at now, with the
	// total matching count
	ListOpen(now time.Time, params utils.PaginationParams) ([]models.Campaign, int64, error)
}

// RoleRepository defines the interface for role data access
type RoleRepository interface {
	// Create creates a new role
	Create(role *models.Role) error

	// FindByID finds a role by ID
	FindByID(id uint64, preload ...string) (*models.Role, error)

	// Update updates a role
	Update(role *models.Role) error

	// Delete deletes a role and its applications
	Delete(id uint64) error

	// ListByCampaign lists roles of a campaign
	ListByCampaign(campaignID uint64) ([]models.Role, error)
}

// QuestionRepository persists questions together with their variant payload.
// Every mutation runs inside a single transaction covering the core row and
// all subsidiary option rows.
type QuestionRepository interface {
	// Create inserts the core row and, for option-based variants, the
	// option rows. roleIDs scopes the question; empty means common.
	Create(question *models.Question, payload models.QuestionPayload, roleIDs []uint64) error

	// FindByID returns the core row and its reassembled payload.
	FindByID(id uint64) (*models.Question, models.QuestionPayload, error)

	// Update rewrites the scalar fields and tag, then replaces the full
	// subsidiary row set with the new payload's.
	Update(question *models.Question, payload models.QuestionPayload) error

	// Delete removes the question, its options, and every answer that
	// references it along with the answers' subsidiary rows.
	Delete(id uint64) error

	// ListByCampaign returns the campaign's questions with payloads.
	ListByCampaign(campaignID uint64) ([]QuestionWithPayload, error)

	// ListByRole returns the questions visible to a role: role-scoped
	// ones plus the campaign's common questions.
	ListByRole(campaignID, roleID uint64) ([]QuestionWithPayload, error)
}

// QuestionWithPayload pairs a question row with its typed payload.
type QuestionWithPayload struct {
	Question models.Question
	Payload  models.QuestionPayload
}

// AnswerRepository persists answers and their variant payloads. Mutations
// are transactional and touch the parent application's updated_at so
// reviewers can spot freshly edited submissions.
type AnswerRepository interface {
	// Create inserts the answer row plus its subsidiary rows.
	Create(answer *models.Answer, payload models.AnswerPayload) error

	// FindByID returns the answer and its reassembled payload.
	FindByID(id uint64) (*models.Answer, models.AnswerPayload, error)

	// FindByApplicationAndQuestion returns the application's answer to a
	// question, if any.
	FindByApplicationAndQuestion(applicationID, questionID uint64) (*models.Answer, error)

	// Update replaces the answer's subsidiary rows with the new payload's.
	Update(id uint64, payload models.AnswerPayload) error

	// Delete removes the answer and its subsidiary rows.
	Delete(id uint64) error

	// ListByApplication returns all answers of an application.
	ListByApplication(applicationID uint64) ([]AnswerWithPayload, error)

	// ListByApplicationAndRole returns the application's answers limited
	// to questions visible to the role (role-scoped plus common).
	ListByApplicationAndRole(applicationID, roleID uint64) ([]AnswerWithPayload, error)
}

// AnswerWithPayload pairs an answer row with its typed payload.
type AnswerWithPayload struct {
	Answer  models.Answer
	Payload models.AnswerPayload
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	// Create creates a new application
	Create(app *models.Application) error

	// FindByID finds an application by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Application, error)

	// FindByRoleAndUser finds a user's application for a role
	FindByRoleAndUser(roleID, userID uint64) (*models.Application, error)

	// Update updates an application
	Update(app *models.Application) error

	// ListByRole lists applications for a role
	ListByRole(roleID uint64) ([]models.Application, error)

	// ListByUser lists a user's own applications
	ListByUser(userID uint64) ([]models.Application, error)

	// AddComment attaches a reviewer comment
	AddComment(comment *models.Comment) error

	// ListComments lists an application's comments
	ListComments(applicationID uint64) ([]models.Comment, error)

	// AddRating attaches a reviewer rating
	AddRating(rating *models.Rating) error

	// ListRatings lists an application's ratings
	ListRatings(applicationID uint64) ([]models.Rating, error)
}

// OfferRepository defines the interface for offer data access
type OfferRepository interface {
	// Create creates a new offer
	Create(offer *models.Offer) error

	// FindByID finds an offer by ID
	FindByID(id uint64, preload ...string) (*models.Offer, error)

	// FindByReplyToken finds an offer by its reply token
	FindByReplyToken(token string) (*models.Offer, error)

	// Update updates an offer
	Update(offer *models.Offer) error

	// ListByRole lists offers for a role
	ListByRole(roleID uint64) ([]models.Offer, error)
}
