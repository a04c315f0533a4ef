package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Ownership-chain walks resolve permissions through these joins
		{"memberships", "idx_memberships_user_id", "user_id"},
		{"campaigns", "idx_campaigns_organisation_id", "organisation_id"},
		{"roles", "idx_roles_campaign_id", "campaign_id"},
		{"applications", "idx_applications_role_id", "role_id"},

		// Variant store lookups
		{"question_options", "idx_question_options_question_id", "question_id"},
		{"answers", "idx_answers_application_id", "application_id"},
		{"answers", "idx_answers_question_id", "question_id"},
		{"answer_options", "idx_answer_options_answer_id", "answer_id"},

		// Reviewer queries
		{"comments", "idx_comments_application_id", "application_id"},
		{"ratings", "idx_ratings_application_id", "application_id"},
		{"offers", "idx_offers_reply_token", "reply_token"},

		{"organisations", "idx_organisations_invite_code", "invite_code"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
