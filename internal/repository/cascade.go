package repository

import (
	"github.com/perditionlabs/recruitd/internal/models"
	"gorm.io/gorm"
)

// Cascades are performed explicitly rather than through database foreign-key
// actions, so every repository delete funnels through these helpers inside
// its own transaction.

// deleteAnswerSubsidiaries hard-deletes the subsidiary rows of the given
// answers. Both tables are cleared unconditionally: only one can have rows
// for a given answer and deleting zero rows is a no-op.
func deleteAnswerSubsidiaries(tx *gorm.DB, answerIDs []uint64) error {
	if len(answerIDs) == 0 {
		return nil
	}
	if err := tx.Where("answer_id IN ?", answerIDs).Delete(&models.AnswerText{}).Error; err != nil {
		return err
	}
	return tx.Where("answer_id IN ?", answerIDs).Delete(&models.AnswerOption{}).Error
}

// deleteAnswersFor removes all answers matching cond along with their
// subsidiary rows.
func deleteAnswersFor(tx *gorm.DB, cond string, arg interface{}) error {
	var answerIDs []uint64
	if err := tx.Model(&models.Answer{}).Where(cond, arg).Pluck("id", &answerIDs).Error; err != nil {
		return err
	}
	if err := deleteAnswerSubsidiaries(tx, answerIDs); err != nil {
		return err
	}
	return tx.Where(cond, arg).Delete(&models.Answer{}).Error
}

// deleteApplicationCascade removes an application and everything hanging off
// it: answers with subsidiaries, comments, ratings, offers.
func deleteApplicationCascade(tx *gorm.DB, applicationID uint64) error {
	if err := deleteAnswersFor(tx, "application_id = ?", applicationID); err != nil {
		return err
	}
	if err := tx.Where("application_id = ?", applicationID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("application_id = ?", applicationID).Delete(&models.Rating{}).Error; err != nil {
		return err
	}
	if err := tx.Where("application_id = ?", applicationID).Delete(&models.Offer{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Application{}, applicationID).Error
}

// deleteQuestionCascade removes a question, its option rows, its role
// scoping rows, and every answer that references it.
func deleteQuestionCascade(tx *gorm.DB, questionID uint64) error {
	if err := deleteAnswersFor(tx, "question_id = ?", questionID); err != nil {
		return err
	}
	if err := tx.Where("question_id = ?", questionID).Delete(&models.QuestionOption{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM role_questions WHERE question_id = ?", questionID).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Question{}, questionID).Error
}

// deleteRoleCascade removes a role, its applications, and its question
// scoping rows. Questions themselves belong to the campaign and survive.
func deleteRoleCascade(tx *gorm.DB, roleID uint64) error {
	var appIDs []uint64
	if err := tx.Model(&models.Application{}).Where("role_id = ?", roleID).Pluck("id", &appIDs).Error; err != nil {
		return err
	}
	for _, appID := range appIDs {
		if err := deleteApplicationCascade(tx, appID); err != nil {
			return err
		}
	}
	if err := tx.Exec("DELETE FROM role_questions WHERE role_id = ?", roleID).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Role{}, roleID).Error
}

// deleteCampaignCascade removes a campaign with its roles and questions.
func deleteCampaignCascade(tx *gorm.DB, campaignID uint64) error {
	var roleIDs []uint64
	if err := tx.Model(&models.Role{}).Where("campaign_id = ?", campaignID).Pluck("id", &roleIDs).Error; err != nil {
		return err
	}
	for _, roleID := range roleIDs {
		if err := deleteRoleCascade(tx, roleID); err != nil {
			return err
		}
	}

	var questionIDs []uint64
	if err := tx.Model(&models.Question{}).Where("campaign_id = ?", campaignID).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	for _, questionID := range questionIDs {
		if err := deleteQuestionCascade(tx, questionID); err != nil {
			return err
		}
	}

	return tx.Delete(&models.Campaign{}, campaignID).Error
}
