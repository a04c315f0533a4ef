package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/perditionlabs/recruitd/internal/constants"
	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrQuestionNotFound    = errors.New("question not found")
	ErrInvalidTitle        = errors.New("question title cannot be empty")
	ErrInvalidVariant      = errors.New("unknown question variant")
	ErrNoOptions           = errors.New("option-based question needs at least one option")
	ErrTooManyOptions      = errors.New("too many options")
	ErrEmptyOptionText     = errors.New("option text cannot be empty")
	ErrPayloadTagMismatch  = errors.New("payload does not match the declared variant")
	ErrUnexpectedOptions   = errors.New("short answer question cannot carry options")
	ErrQuestionRoleUnknown = errors.New("one or more roles do not exist in the campaign")
)

// QuestionService provides business logic for questions and their payloads.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	campaignRepo repository.CampaignRepository
	roleRepo     repository.RoleRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo repository.QuestionRepository, campaignRepo repository.CampaignRepository, roleRepo repository.RoleRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		campaignRepo: campaignRepo,
		roleRepo:     roleRepo,
	}
}

// CreateQuestionInput represents parameters to create a question. Empty
// RoleIDs means the question is common to the whole campaign.
type CreateQuestionInput struct {
	CampaignID  uint64
	RoleIDs     []uint64
	Title       string
	Description string
	Required    bool
	MaxBytes    uint32
	Payload     models.QuestionPayload
}

// CreateQuestion validates the payload and persists the question.
func (s *QuestionService) CreateQuestion(input CreateQuestionInput) (*models.Question, models.QuestionPayload, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, nil, ErrInvalidTitle
	}
	if err := validateQuestionPayload(input.Payload); err != nil {
		return nil, nil, err
	}

	if _, err := s.campaignRepo.FindByID(input.CampaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCampaignNotFound
		}
		return nil, nil, fmt.Errorf("failed to find campaign: %w", err)
	}

	for _, roleID := range input.RoleIDs {
		role, err := s.roleRepo.FindByID(roleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrQuestionRoleUnknown
			}
			return nil, nil, fmt.Errorf("failed to find role: %w", err)
		}
		if role.CampaignID != input.CampaignID {
			return nil, nil, ErrQuestionRoleUnknown
		}
	}

	maxBytes := input.MaxBytes
	if maxBytes == 0 {
		maxBytes = constants.DefaultAnswerBytes
	}

	question := &models.Question{
		CampaignID:  input.CampaignID,
		Title:       input.Title,
		Description: input.Description,
		Required:    input.Required,
		MaxBytes:    maxBytes,
	}

	if err := s.questionRepo.Create(question, input.Payload, input.RoleIDs); err != nil {
		return nil, nil, fmt.Errorf("failed to create question: %w", err)
	}

	return question, input.Payload, nil
}

// GetQuestion returns a question and its payload.
func (s *QuestionService) GetQuestion(questionID uint64) (*models.Question, models.QuestionPayload, error) {
	question, payload, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrQuestionNotFound
		}
		return nil, nil, fmt.Errorf("failed to find question: %w", err)
	}
	return question, payload, nil
}

// UpdateQuestionInput carries the updatable question fields. Payload is
// mandatory and may switch the question to a different variant.
type UpdateQuestionInput struct {
	Title       *string
	Description *string
	Required    *bool
	MaxBytes    *uint32
	Payload     models.QuestionPayload
}

// UpdateQuestion validates the new payload against its own tag and replaces
// the stored one wholesale.
func (s *QuestionService) UpdateQuestion(questionID uint64, input UpdateQuestionInput) (*models.Question, models.QuestionPayload, error) {
	if err := validateQuestionPayload(input.Payload); err != nil {
		return nil, nil, err
	}

	question, _, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrQuestionNotFound
		}
		return nil, nil, fmt.Errorf("failed to find question: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, nil, ErrInvalidTitle
		}
		question.Title = *input.Title
	}
	if input.Description != nil {
		question.Description = *input.Description
	}
	if input.Required != nil {
		question.Required = *input.Required
	}
	if input.MaxBytes != nil && *input.MaxBytes > 0 {
		question.MaxBytes = *input.MaxBytes
	}

	if err := s.questionRepo.Update(question, input.Payload); err != nil {
		return nil, nil, fmt.Errorf("failed to update question: %w", err)
	}

	return question, input.Payload, nil
}

// DeleteQuestion removes a question along with every answer to it.
func (s *QuestionService) DeleteQuestion(questionID uint64) error {
	if _, _, err := s.questionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to find question: %w", err)
	}

	if err := s.questionRepo.Delete(questionID); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	return nil
}

// ListQuestions returns a campaign's questions with payloads.
func (s *QuestionService) ListQuestions(campaignID uint64) ([]repository.QuestionWithPayload, error) {
	questions, err := s.questionRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// ListQuestionsForRole returns the questions an applicant to a role answers.
func (s *QuestionService) ListQuestionsForRole(roleID uint64) ([]repository.QuestionWithPayload, error) {
	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	questions, err := s.questionRepo.ListByRole(role.CampaignID, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// validateQuestionPayload runs the structural checks applied before any
// write: option-based variants carry at least one option, ShortAnswer
// carries none.
func validateQuestionPayload(payload models.QuestionPayload) error {
	if payload == nil {
		return ErrInvalidVariant
	}

	switch p := payload.(type) {
	case models.ShortAnswerSpec:
		return nil

	case models.OptionListSpec:
		if !p.Tag.HasOptions() {
			if p.Tag == models.VariantShortAnswer {
				return ErrUnexpectedOptions
			}
			return ErrInvalidVariant
		}
		if len(p.Options) == 0 {
			return ErrNoOptions
		}
		if len(p.Options) > constants.MaxQuestionOptions {
			return ErrTooManyOptions
		}
		for _, opt := range p.Options {
			if strings.TrimSpace(opt.Text) == "" {
				return ErrEmptyOptionText
			}
		}
		return nil

	default:
		return ErrInvalidVariant
	}
}
