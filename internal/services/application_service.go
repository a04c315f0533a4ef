package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/perditionlabs/recruitd/internal/constants"
	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCampaignClosed     = errors.New("campaign is not open for applications")
	ErrAlreadyApplied     = errors.New("user has already applied for this role")
	ErrAlreadySubmitted   = errors.New("application has already been submitted")
	ErrRequiredUnanswered = errors.New("a required question has not been answered")
	ErrInvalidStatus      = errors.New("invalid application status")
	ErrEmptyCommentBody   = errors.New("comment body cannot be empty")
	ErrInvalidRatingScore = errors.New("rating score out of range")
)

// ApplicationService provides business logic for applications, comments and
// ratings.
type ApplicationService struct {
	appRepo      repository.ApplicationRepository
	roleRepo     repository.RoleRepository
	campRepo     repository.CampaignRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(appRepo repository.ApplicationRepository, roleRepo repository.RoleRepository, campRepo repository.CampaignRepository, questionRepo repository.QuestionRepository, answerRepo repository.AnswerRepository) *ApplicationService {
	return &ApplicationService{
		appRepo:      appRepo,
		roleRepo:     roleRepo,
		campRepo:     campRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

// Apply creates a draft application for a role. The owning campaign must be
// published and inside its application window.
func (s *ApplicationService) Apply(roleID, userID uint64) (*models.Application, error) {
	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	campaign, err := s.campRepo.FindByID(role.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}
	if !campaign.Published || !campaign.IsOpenAt(time.Now()) {
		return nil, ErrCampaignClosed
	}

	if _, err := s.appRepo.FindByRoleAndUser(roleID, userID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}

	app := &models.Application{
		RoleID: roleID,
		UserID: userID,
	}

	if err := s.appRepo.Create(app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return app, nil
}

// GetApplication returns an application with related data.
func (s *ApplicationService) GetApplication(applicationID uint64) (*models.Application, error) {
	app, err := s.appRepo.FindByID(applicationID, "User", "Role")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return app, nil
}

// Submit marks a draft application submitted and moves it to Pending. Every
// required question visible to the application's role must be answered.
func (s *ApplicationService) Submit(applicationID uint64) (*models.Application, error) {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if app.Submitted {
		return nil, ErrAlreadySubmitted
	}

	if err := s.checkRequiredAnswered(app); err != nil {
		return nil, err
	}

	app.Submitted = true
	app.Status = models.ApplicationStatusPending
	app.PrivateStatus = models.ApplicationStatusPending

	if err := s.appRepo.Update(app); err != nil {
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}

	return app, nil
}

// checkRequiredAnswered verifies that every required question visible to the
// application's role has an answer.
func (s *ApplicationService) checkRequiredAnswered(app *models.Application) error {
	role, err := s.roleRepo.FindByID(app.RoleID)
	if err != nil {
		return fmt.Errorf("failed to find role: %w", err)
	}

	questions, err := s.questionRepo.ListByRole(role.CampaignID, role.ID)
	if err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}

	answers, err := s.answerRepo.ListByApplication(app.ID)
	if err != nil {
		return fmt.Errorf("failed to list answers: %w", err)
	}

	answered := make(map[uint64]struct{}, len(answers))
	for _, a := range answers {
		answered[a.Answer.QuestionID] = struct{}{}
	}

	for _, q := range questions {
		if !q.Question.Required {
			continue
		}
		if _, ok := answered[q.Question.ID]; !ok {
			return ErrRequiredUnanswered
		}
	}
	return nil
}

// SetStatusInput carries a reviewer status change. Private controls whether
// the admin-only status or the applicant-visible one is written.
type SetStatusInput struct {
	ApplicationID uint64
	Status        models.ApplicationStatus
	Private       bool
}

// SetStatus updates the public or private status of an application.
func (s *ApplicationService) SetStatus(input SetStatusInput) (*models.Application, error) {
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	app, err := s.appRepo.FindByID(input.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if input.Private {
		app.PrivateStatus = input.Status
	} else {
		app.Status = input.Status
	}

	if err := s.appRepo.Update(app); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	return app, nil
}

// ListByRole lists a role's applications for reviewers.
func (s *ApplicationService) ListByRole(roleID uint64) ([]models.Application, error) {
	apps, err := s.appRepo.ListByRole(roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListByUser lists the applications a user has made.
func (s *ApplicationService) ListByUser(userID uint64) ([]models.Application, error) {
	apps, err := s.appRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// AddComment attaches a reviewer comment to an application.
func (s *ApplicationService) AddComment(applicationID, authorID uint64, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyCommentBody
	}

	if _, err := s.appRepo.FindByID(applicationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	comment := &models.Comment{
		ApplicationID: applicationID,
		AuthorID:      authorID,
		Body:          body,
	}

	if err := s.appRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment, nil
}

// ListComments lists an application's comments.
func (s *ApplicationService) ListComments(applicationID uint64) ([]models.Comment, error) {
	comments, err := s.appRepo.ListComments(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddRating attaches a reviewer rating to an application.
func (s *ApplicationService) AddRating(applicationID, raterID uint64, score int) (*models.Rating, error) {
	if score < constants.MinRatingScore || score > constants.MaxRatingScore {
		return nil, ErrInvalidRatingScore
	}

	if _, err := s.appRepo.FindByID(applicationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	rating := &models.Rating{
		ApplicationID: applicationID,
		RaterID:       raterID,
		Score:         score,
	}

	if err := s.appRepo.AddRating(rating); err != nil {
		return nil, fmt.Errorf("failed to add rating: %w", err)
	}

	return rating, nil
}

// ListRatings lists an application's ratings.
func (s *ApplicationService) ListRatings(applicationID uint64) ([]models.Rating, error) {
	ratings, err := s.appRepo.ListRatings(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}
