package models

import (
	"time"

	"gorm.io/gorm"
)

// QuestionVariant tags the shape of a question and of every answer to it.
// The set is closed; validation, storage and reassembly all switch
// exhaustively over it.
type QuestionVariant string

const (
	VariantShortAnswer QuestionVariant = "SHORT_ANSWER"
	VariantMultiChoice QuestionVariant = "MULTI_CHOICE"
	VariantMultiSelect QuestionVariant = "MULTI_SELECT"
	VariantDropDown    QuestionVariant = "DROP_DOWN"
	VariantRanking     QuestionVariant = "RANKING"
)

// Valid reports whether v is one of the known variants.
func (v QuestionVariant) Valid() bool {
	switch v {
	case VariantShortAnswer, VariantMultiChoice, VariantMultiSelect, VariantDropDown, VariantRanking:
		return true
	default:
		return false
	}
}

// HasOptions reports whether questions of this variant own option rows.
// ShortAnswer questions never do; every other variant always does.
func (v QuestionVariant) HasOptions() bool {
	return v.Valid() && v != VariantShortAnswer
}

type Question struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	CampaignID  uint64          `gorm:"not null;index" json:"campaign_id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Required    bool            `gorm:"not null;default:false" json:"required"`
	MaxBytes    uint32          `gorm:"not null;default:4096" json:"max_bytes"`
	Variant     QuestionVariant `gorm:"type:varchar(20);not null" json:"variant"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Campaign Campaign         `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
	Roles    []Role           `gorm:"many2many:role_questions" json:"roles,omitempty"`
	Options  []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

// QuestionOption is one selectable choice of an option-based question.
type QuestionOption struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	QuestionID   uint64    `gorm:"not null;index" json:"question_id"`
	DisplayOrder int       `gorm:"not null" json:"display_order"`
	Text         string    `gorm:"type:varchar(255);not null" json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}
