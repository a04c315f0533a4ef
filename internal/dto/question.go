package dto

import (
	"errors"
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
)

var ErrMalformedPayload = errors.New("malformed payload")

// QuestionPayloadDTO is the wire form of a question payload. Variant selects
// the shape; Options is only meaningful for option-based variants.
type QuestionPayloadDTO struct {
	Variant models.QuestionVariant `json:"variant" binding:"required"`
	Options []models.OptionInput   `json:"options,omitempty"`
}

// ToPayload converts the wire form into the typed payload.
func (d QuestionPayloadDTO) ToPayload() (models.QuestionPayload, error) {
	switch d.Variant {
	case models.VariantShortAnswer:
		if len(d.Options) > 0 {
			return nil, ErrMalformedPayload
		}
		return models.ShortAnswerSpec{}, nil

	case models.VariantMultiChoice, models.VariantMultiSelect, models.VariantDropDown, models.VariantRanking:
		return models.OptionListSpec{Tag: d.Variant, Options: d.Options}, nil

	default:
		return nil, ErrMalformedPayload
	}
}

// QuestionOptionDTO represents a stored option in API responses
type QuestionOptionDTO struct {
	ID           uint64 `json:"id"`
	DisplayOrder int    `json:"display_order"`
	Text         string `json:"text"`
}

// QuestionDTO represents a question with its payload in API responses
type QuestionDTO struct {
	ID          uint64                 `json:"id"`
	CampaignID  uint64                 `json:"campaign_id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Required    bool                   `json:"required"`
	MaxBytes    uint32                 `json:"max_bytes"`
	Variant     models.QuestionVariant `json:"variant"`
	Options     []QuestionOptionDTO    `json:"options,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ToQuestionDTO converts a question and its payload to DTO. Stored option
// ids come from the question's loaded option rows.
func ToQuestionDTO(question models.Question) QuestionDTO {
	d := QuestionDTO{
		ID:          question.ID,
		CampaignID:  question.CampaignID,
		Title:       question.Title,
		Description: question.Description,
		Required:    question.Required,
		MaxBytes:    question.MaxBytes,
		Variant:     question.Variant,
		CreatedAt:   question.CreatedAt,
		UpdatedAt:   question.UpdatedAt,
	}

	if question.Variant.HasOptions() {
		d.Options = make([]QuestionOptionDTO, len(question.Options))
		for i, opt := range question.Options {
			d.Options[i] = QuestionOptionDTO{
				ID:           opt.ID,
				DisplayOrder: opt.DisplayOrder,
				Text:         opt.Text,
			}
		}
	}

	return d
}
