package repository

import (
	"fmt"
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
	"gorm.io/gorm"
)

// GormAnswerRepository is a GORM implementation of AnswerRepository
type GormAnswerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &GormAnswerRepository{db: db}
}

// Create inserts the answer row and its subsidiary rows in one transaction,
// then touches the parent application's updated_at.
func (r *GormAnswerRepository) Create(answer *models.Answer, payload models.AnswerPayload) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		answer.Variant = payload.Variant()
		if err := tx.Create(answer).Error; err != nil {
			return err
		}
		if err := insertAnswerRows(tx, answer.ID, payload); err != nil {
			return err
		}
		return touchApplication(tx, answer.ApplicationID)
	})
}

// FindByID returns the answer and its reassembled payload.
func (r *GormAnswerRepository) FindByID(id uint64) (*models.Answer, models.AnswerPayload, error) {
	var answer models.Answer
	if err := r.db.First(&answer, id).Error; err != nil {
		return nil, nil, err
	}

	payload, err := r.loadPayload(answer)
	if err != nil {
		return nil, nil, err
	}
	return &answer, payload, nil
}

// FindByApplicationAndQuestion returns the application's answer to a
// question, if any.
func (r *GormAnswerRepository) FindByApplicationAndQuestion(applicationID, questionID uint64) (*models.Answer, error) {
	var answer models.Answer
	if err := r.db.Where("application_id = ? AND question_id = ?", applicationID, questionID).
		First(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// Update replaces the subsidiary rows, keyed by the stored variant, with the
// new payload's rows, all in one transaction.
func (r *GormAnswerRepository) Update(id uint64, payload models.AnswerPayload) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var answer models.Answer
		if err := tx.First(&answer, id).Error; err != nil {
			return err
		}

		if err := deleteAnswerRows(tx, answer.ID, answer.Variant); err != nil {
			return err
		}

		answer.Variant = payload.Variant()
		if err := tx.Save(&answer).Error; err != nil {
			return err
		}

		if err := insertAnswerRows(tx, answer.ID, payload); err != nil {
			return err
		}
		return touchApplication(tx, answer.ApplicationID)
	})
}

// Delete removes the answer and its subsidiary rows.
func (r *GormAnswerRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var answer models.Answer
		if err := tx.First(&answer, id).Error; err != nil {
			return err
		}

		if err := deleteAnswerRows(tx, answer.ID, answer.Variant); err != nil {
			return err
		}

		if err := tx.Delete(&models.Answer{}, id).Error; err != nil {
			return err
		}
		return touchApplication(tx, answer.ApplicationID)
	})
}

// ListByApplication returns all answers of an application with payloads.
func (r *GormAnswerRepository) ListByApplication(applicationID uint64) ([]AnswerWithPayload, error) {
	var answers []models.Answer
	if err := r.db.Where("application_id = ?", applicationID).
		Order("question_id ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return r.attachPayloads(answers)
}

// ListByApplicationAndRole limits the answers to questions visible to the
// role: role-scoped ones plus common questions with no scoping rows.
func (r *GormAnswerRepository) ListByApplicationAndRole(applicationID, roleID uint64) ([]AnswerWithPayload, error) {
	scoped := r.db.Table("role_questions").
		Select("question_id").
		Where("role_id = ?", roleID)
	common := r.db.Table("role_questions").Select("question_id")

	var answers []models.Answer
	if err := r.db.Where("application_id = ?", applicationID).
		Where("question_id IN (?) OR question_id NOT IN (?)", scoped, common).
		Order("question_id ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return r.attachPayloads(answers)
}

func (r *GormAnswerRepository) attachPayloads(answers []models.Answer) ([]AnswerWithPayload, error) {
	result := make([]AnswerWithPayload, 0, len(answers))
	for _, ans := range answers {
		payload, err := r.loadPayload(ans)
		if err != nil {
			return nil, err
		}
		result = append(result, AnswerWithPayload{Answer: ans, Payload: payload})
	}
	return result, nil
}

// loadPayload reassembles the typed payload: a single text row for
// ShortAnswer, option references for everything else. Ranking rows come back
// in position order, which is the applicant's input order.
func (r *GormAnswerRepository) loadPayload(answer models.Answer) (models.AnswerPayload, error) {
	switch answer.Variant {
	case models.VariantShortAnswer:
		var text models.AnswerText
		if err := r.db.Where("answer_id = ?", answer.ID).First(&text).Error; err != nil {
			return nil, fmt.Errorf("answer %d: missing text row: %w", answer.ID, err)
		}
		return models.TextAnswer{Text: text.Text}, nil

	case models.VariantMultiChoice, models.VariantDropDown:
		var row models.AnswerOption
		if err := r.db.Where("answer_id = ?", answer.ID).First(&row).Error; err != nil {
			return nil, fmt.Errorf("answer %d: missing option row: %w", answer.ID, err)
		}
		return models.ChoiceAnswer{Tag: answer.Variant, OptionID: row.QuestionOptionID}, nil

	case models.VariantMultiSelect:
		ids, err := r.selectedOptionIDs(answer.ID)
		if err != nil {
			return nil, err
		}
		return models.SelectionAnswer{OptionIDs: ids}, nil

	case models.VariantRanking:
		ids, err := r.selectedOptionIDs(answer.ID)
		if err != nil {
			return nil, err
		}
		return models.RankingAnswer{OptionIDs: ids}, nil

	default:
		return nil, fmt.Errorf("answer %d: unknown variant %q", answer.ID, answer.Variant)
	}
}

func (r *GormAnswerRepository) selectedOptionIDs(answerID uint64) ([]uint64, error) {
	var rows []models.AnswerOption
	if err := r.db.Where("answer_id = ?", answerID).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("answer %d: no option rows", answerID)
	}

	ids := make([]uint64, len(rows))
	for i, row := range rows {
		ids[i] = row.QuestionOptionID
	}
	return ids, nil
}

// insertAnswerRows writes the payload's subsidiary rows. Position is a
// 1-based sequence in input order; it only matters for Ranking but is written
// for every option-based variant so reassembly is deterministic.
func insertAnswerRows(tx *gorm.DB, answerID uint64, payload models.AnswerPayload) error {
	switch p := payload.(type) {
	case models.TextAnswer:
		return tx.Create(&models.AnswerText{AnswerID: answerID, Text: p.Text}).Error

	case models.ChoiceAnswer:
		return tx.Create(&models.AnswerOption{
			AnswerID:         answerID,
			QuestionOptionID: p.OptionID,
			Position:         1,
		}).Error

	case models.SelectionAnswer:
		return insertOptionRows(tx, answerID, p.OptionIDs)

	case models.RankingAnswer:
		return insertOptionRows(tx, answerID, p.OptionIDs)

	default:
		return fmt.Errorf("unknown answer payload type %T", payload)
	}
}

func insertOptionRows(tx *gorm.DB, answerID uint64, optionIDs []uint64) error {
	rows := make([]models.AnswerOption, len(optionIDs))
	for i, optionID := range optionIDs {
		rows[i] = models.AnswerOption{
			AnswerID:         answerID,
			QuestionOptionID: optionID,
			Position:         i + 1,
		}
	}
	return tx.Create(&rows).Error
}

// deleteAnswerRows clears the subsidiary rows for the variant the answer was
// stored under. Deleting zero rows is a no-op.
func deleteAnswerRows(tx *gorm.DB, answerID uint64, variant models.QuestionVariant) error {
	switch variant {
	case models.VariantShortAnswer:
		return tx.Where("answer_id = ?", answerID).Delete(&models.AnswerText{}).Error
	case models.VariantMultiChoice, models.VariantMultiSelect, models.VariantDropDown, models.VariantRanking:
		return tx.Where("answer_id = ?", answerID).Delete(&models.AnswerOption{}).Error
	default:
		return fmt.Errorf("unknown answer variant %q", variant)
	}
}

func touchApplication(tx *gorm.DB, applicationID uint64) error {
	return tx.Model(&models.Application{}).
		Where("id = ?", applicationID).
		Update("updated_at", time.Now()).Error
}
