package repository

import (
	"errors"
	"fmt"

	"github.com/perditionlabs/recruitd/internal/models"
	"gorm.io/gorm"
)

// ErrCorruptQuestion is returned when an option-based question has no option
// rows. The invariant is that option rows exist iff the variant is
// option-based, so an empty set is data corruption, not an empty list.
var ErrCorruptQuestion = errors.New("option-based question has no options")

// GormQuestionRepository is a GORM implementation of QuestionRepository
type GormQuestionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &GormQuestionRepository{db: db}
}

// Create inserts the core row, role scoping rows, and the payload's option
// rows in one transaction. A failed option insert rolls back the core row.
func (r *GormQuestionRepository) Create(question *models.Question, payload models.QuestionPayload, roleIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		question.Variant = payload.Variant()
		if err := tx.Create(question).Error; err != nil {
			return err
		}

		for _, roleID := range roleIDs {
			if err := tx.Exec("INSERT INTO role_questions (role_id, question_id) VALUES (?, ?)", roleID, question.ID).Error; err != nil {
				return err
			}
		}

		return insertQuestionOptions(tx, question.ID, payload)
	})
}

// FindByID returns the core row and its reassembled payload.
func (r *GormQuestionRepository) FindByID(id uint64) (*models.Question, models.QuestionPayload, error) {
	var question models.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, nil, err
	}

	payload, err := r.loadPayload(&question)
	if err != nil {
		return nil, nil, err
	}
	return &question, payload, nil
}

// Update rewrites the scalar fields and tag, then replaces the whole option
// set. The delete is keyed by question id only, so it is a no-op when the
// previous variant was ShortAnswer and a full refresh otherwise, even when
// the tag did not change. A variant flip invalidates every stored answer, so
// those are cascaded away; an answer's variant tag must always equal its
// question's.
func (r *GormQuestionRepository) Update(question *models.Question, payload models.QuestionPayload) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var stored models.Question
		if err := tx.First(&stored, question.ID).Error; err != nil {
			return err
		}

		if stored.Variant != payload.Variant() {
			if err := deleteAnswersFor(tx, "question_id = ?", question.ID); err != nil {
				return err
			}
		}

		question.Variant = payload.Variant()
		if err := tx.Save(question).Error; err != nil {
			return err
		}

		if err := tx.Where("question_id = ?", question.ID).Delete(&models.QuestionOption{}).Error; err != nil {
			return err
		}

		return insertQuestionOptions(tx, question.ID, payload)
	})
}

// Delete removes the question, its options, and every answer referencing it.
func (r *GormQuestionRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteQuestionCascade(tx, id)
	})
}

// ListByCampaign returns the campaign's questions with payloads.
func (r *GormQuestionRepository) ListByCampaign(campaignID uint64) ([]QuestionWithPayload, error) {
	var questions []models.Question
	if err := r.db.Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return r.attachPayloads(questions)
}

// ListByRole returns role-scoped questions plus the campaign's common ones.
func (r *GormQuestionRepository) ListByRole(campaignID, roleID uint64) ([]QuestionWithPayload, error) {
	scoped := r.db.Table("role_questions").
		Select("question_id").
		Where("role_id = ?", roleID)
	common := r.db.Table("role_questions").Select("question_id")

	var questions []models.Question
	if err := r.db.Where("campaign_id = ?", campaignID).
		Where("id IN (?) OR id NOT IN (?)", scoped, common).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return r.attachPayloads(questions)
}

func (r *GormQuestionRepository) attachPayloads(questions []models.Question) ([]QuestionWithPayload, error) {
	result := make([]QuestionWithPayload, 0, len(questions))
	for i := range questions {
		payload, err := r.loadPayload(&questions[i])
		if err != nil {
			return nil, err
		}
		result = append(result, QuestionWithPayload{Question: questions[i], Payload: payload})
	}
	return result, nil
}

// loadPayload reassembles the typed payload from the option rows, grouped by
// question and ordered by display order. The rows are also attached to the
// question so callers can validate answer option ids against them.
func (r *GormQuestionRepository) loadPayload(question *models.Question) (models.QuestionPayload, error) {
	switch question.Variant {
	case models.VariantShortAnswer:
		return models.ShortAnswerSpec{}, nil

	case models.VariantMultiChoice, models.VariantMultiSelect, models.VariantDropDown, models.VariantRanking:
		var options []models.QuestionOption
		if err := r.db.Where("question_id = ?", question.ID).
			Order("display_order ASC").
			Find(&options).Error; err != nil {
			return nil, err
		}
		if len(options) == 0 {
			return nil, fmt.Errorf("question %d: %w", question.ID, ErrCorruptQuestion)
		}
		question.Options = options

		inputs := make([]models.OptionInput, len(options))
		for i, opt := range options {
			inputs[i] = models.OptionInput{DisplayOrder: opt.DisplayOrder, Text: opt.Text}
		}
		return models.OptionListSpec{Tag: question.Variant, Options: inputs}, nil

	default:
		return nil, fmt.Errorf("question %d: unknown variant %q", question.ID, question.Variant)
	}
}

// insertQuestionOptions bulk-inserts the payload's option rows. ShortAnswer
// has none.
func insertQuestionOptions(tx *gorm.DB, questionID uint64, payload models.QuestionPayload) error {
	switch p := payload.(type) {
	case models.ShortAnswerSpec:
		return nil

	case models.OptionListSpec:
		options := make([]models.QuestionOption, len(p.Options))
		for i, input := range p.Options {
			options[i] = models.QuestionOption{
				QuestionID:   questionID,
				DisplayOrder: input.DisplayOrder,
				Text:         input.Text,
			}
		}
		return tx.Create(&options).Error

	default:
		return fmt.Errorf("unknown question payload type %T", payload)
	}
}
