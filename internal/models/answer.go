package models

import (
	"time"

	"gorm.io/gorm"
)

// Answer is an applicant's response to one question. The variant tag is
// copied from the question at creation time and must always match it. The
// payload lives in subsidiary rows: AnswerText for ShortAnswer, AnswerOption
// for everything else.
type Answer struct {
	ID            uint64          `gorm:"primarykey" json:"id"`
	ApplicationID uint64          `gorm:"not null;index" json:"application_id"`
	QuestionID    uint64          `gorm:"not null;index" json:"question_id"`
	Variant       QuestionVariant `gorm:"type:varchar(20);not null" json:"variant"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Application Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	Question    Question    `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

// AnswerText holds the free text of a ShortAnswer answer. One row per answer.
type AnswerText struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	AnswerID uint64 `gorm:"not null;uniqueIndex" json:"answer_id"`
	Text     string `gorm:"type:text;not null" json:"text"`
}

// AnswerOption references one selected option of an option-based answer.
// Position is written as a 1-based sequence in input order and is only
// significant for Ranking answers.
type AnswerOption struct {
	ID               uint64 `gorm:"primarykey" json:"id"`
	AnswerID         uint64 `gorm:"not null;index" json:"answer_id"`
	QuestionOptionID uint64 `gorm:"not null" json:"question_option_id"`
	Position         int    `gorm:"not null" json:"position"`
}
