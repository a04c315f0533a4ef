package services

import (
	"errors"
	"fmt"

	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAnswerNotFound       = errors.New("answer not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrVariantMismatch      = errors.New("answer variant does not match the question")
	ErrEmptyAnswerText      = errors.New("answer text cannot be empty")
	ErrAnswerTextTooLong    = errors.New("answer text exceeds the question's limit")
	ErrEmptySelection       = errors.New("at least one option must be selected")
	ErrUnknownOption        = errors.New("selected option does not belong to the question")
	ErrDuplicateOption      = errors.New("an option may only be selected once")
	ErrAlreadyAnswered      = errors.New("question already answered for this application")
	ErrApplicationDecided   = errors.New("application has already been decided")
	ErrIncompleteRanking    = errors.New("ranking must order every option of the question")
	ErrRequiredAnswerLocked = errors.New("required answer cannot be removed after submission")
)

// AnswerService provides business logic for answers. It validates a payload
// against the owning question's variant before any write; the repository
// only sees payloads that already hold structurally.
type AnswerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	appRepo      repository.ApplicationRepository
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(answerRepo repository.AnswerRepository, questionRepo repository.QuestionRepository, appRepo repository.ApplicationRepository) *AnswerService {
	return &AnswerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		appRepo:      appRepo,
	}
}

// CreateAnswerInput represents a new answer submission.
type CreateAnswerInput struct {
	ApplicationID uint64
	QuestionID    uint64
	Payload       models.AnswerPayload
}

// CreateAnswer validates and persists an answer.
func (s *AnswerService) CreateAnswer(input CreateAnswerInput) (*models.Answer, models.AnswerPayload, error) {
	app, err := s.appRepo.FindByID(input.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrApplicationNotFound
		}
		return nil, nil, fmt.Errorf("failed to find application: %w", err)
	}
	if app.Status != models.ApplicationStatusDraft && app.Status != models.ApplicationStatusPending {
		return nil, nil, ErrApplicationDecided
	}

	question, _, err := s.questionRepo.FindByID(input.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrQuestionNotFound
		}
		return nil, nil, fmt.Errorf("failed to find question: %w", err)
	}

	if err := validateAnswerPayload(question, input.Payload); err != nil {
		return nil, nil, err
	}

	if _, err := s.answerRepo.FindByApplicationAndQuestion(input.ApplicationID, input.QuestionID); err == nil {
		return nil, nil, ErrAlreadyAnswered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check for existing answer: %w", err)
	}

	answer := &models.Answer{
		ApplicationID: input.ApplicationID,
		QuestionID:    input.QuestionID,
	}

	if err := s.answerRepo.Create(answer, input.Payload); err != nil {
		return nil, nil, fmt.Errorf("failed to create answer: %w", err)
	}

	return answer, input.Payload, nil
}

// GetAnswer returns an answer and its payload.
func (s *AnswerService) GetAnswer(answerID uint64) (*models.Answer, models.AnswerPayload, error) {
	answer, payload, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAnswerNotFound
		}
		return nil, nil, fmt.Errorf("failed to find answer: %w", err)
	}
	return answer, payload, nil
}

// UpdateAnswer validates the new payload against the answer's question and
// replaces the stored payload.
func (s *AnswerService) UpdateAnswer(answerID uint64, payload models.AnswerPayload) (*models.Answer, models.AnswerPayload, error) {
	answer, _, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAnswerNotFound
		}
		return nil, nil, fmt.Errorf("failed to find answer: %w", err)
	}

	question, _, err := s.questionRepo.FindByID(answer.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrQuestionNotFound
		}
		return nil, nil, fmt.Errorf("failed to find question: %w", err)
	}

	if err := validateAnswerPayload(question, payload); err != nil {
		return nil, nil, err
	}

	if err := s.answerRepo.Update(answerID, payload); err != nil {
		return nil, nil, fmt.Errorf("failed to update answer: %w", err)
	}

	answer.Variant = payload.Variant()
	return answer, payload, nil
}

// DeleteAnswer removes an answer. An answer to a required question is locked
// once its application has been submitted; an update can never empty one, so
// the guard only applies here.
func (s *AnswerService) DeleteAnswer(answerID uint64) error {
	answer, _, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnswerNotFound
		}
		return fmt.Errorf("failed to find answer: %w", err)
	}

	question, _, err := s.questionRepo.FindByID(answer.QuestionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to find question: %w", err)
	}
	if err == nil && question.Required {
		app, err := s.appRepo.FindByID(answer.ApplicationID)
		if err != nil {
			return fmt.Errorf("failed to find application: %w", err)
		}
		if app.Submitted {
			return ErrRequiredAnswerLocked
		}
	}

	if err := s.answerRepo.Delete(answerID); err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}
	return nil
}

// ListAnswers returns an application's answers, optionally limited to the
// questions visible to one role.
func (s *AnswerService) ListAnswers(applicationID uint64, roleID *uint64) ([]repository.AnswerWithPayload, error) {
	if _, err := s.appRepo.FindByID(applicationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if roleID != nil {
		answers, err := s.answerRepo.ListByApplicationAndRole(applicationID, *roleID)
		if err != nil {
			return nil, fmt.Errorf("failed to list answers: %w", err)
		}
		return answers, nil
	}

	answers, err := s.answerRepo.ListByApplication(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	return answers, nil
}

// validateAnswerPayload checks an answer payload against its question. The
// variant tags must match exactly; per-variant rules follow. Option-id
// membership is checked here, against the question's reassembled option set,
// rather than in the storage layer.
func validateAnswerPayload(question *models.Question, payload models.AnswerPayload) error {
	if payload == nil || !payload.Variant().Valid() {
		return ErrVariantMismatch
	}
	if payload.Variant() != question.Variant {
		return ErrVariantMismatch
	}

	switch p := payload.(type) {
	case models.TextAnswer:
		if p.Text == "" {
			return ErrEmptyAnswerText
		}
		if uint32(len(p.Text)) > question.MaxBytes {
			return ErrAnswerTextTooLong
		}
		return nil

	case models.ChoiceAnswer:
		return validateSelection(question, []uint64{p.OptionID}, false)

	case models.SelectionAnswer:
		return validateSelection(question, p.OptionIDs, false)

	case models.RankingAnswer:
		return validateSelection(question, p.OptionIDs, true)

	default:
		return ErrVariantMismatch
	}
}

// validateSelection checks selected option ids: non-empty, no duplicates,
// and every id drawn from the question's option set. A ranking must cover
// the full set.
func validateSelection(question *models.Question, optionIDs []uint64, fullSet bool) error {
	if len(optionIDs) == 0 {
		return ErrEmptySelection
	}

	valid := make(map[uint64]struct{}, len(question.Options))
	for _, opt := range question.Options {
		valid[opt.ID] = struct{}{}
	}

	seen := make(map[uint64]struct{}, len(optionIDs))
	for _, id := range optionIDs {
		if _, dup := seen[id]; dup {
			return ErrDuplicateOption
		}
		seen[id] = struct{}{}
		if _, ok := valid[id]; !ok {
			return ErrUnknownOption
		}
	}

	if fullSet && len(optionIDs) != len(valid) {
		return ErrIncompleteRanking
	}

	return nil
}
