package dto

import (
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
)

// AnswerPayloadDTO is the wire form of an answer payload. Variant selects
// which of the other fields is read.
type AnswerPayloadDTO struct {
	Variant   models.QuestionVariant `json:"variant" binding:"required"`
	Text      *string                `json:"text,omitempty"`
	OptionID  *uint64                `json:"option_id,omitempty"`
	OptionIDs []uint64               `json:"option_ids,omitempty"`
}

// ToPayload converts the wire form into the typed payload.
func (d AnswerPayloadDTO) ToPayload() (models.AnswerPayload, error) {
	switch d.Variant {
	case models.VariantShortAnswer:
		if d.Text == nil {
			return nil, ErrMalformedPayload
		}
		return models.TextAnswer{Text: *d.Text}, nil

	case models.VariantMultiChoice, models.VariantDropDown:
		if d.OptionID == nil {
			return nil, ErrMalformedPayload
		}
		return models.ChoiceAnswer{Tag: d.Variant, OptionID: *d.OptionID}, nil

	case models.VariantMultiSelect:
		return models.SelectionAnswer{OptionIDs: d.OptionIDs}, nil

	case models.VariantRanking:
		return models.RankingAnswer{OptionIDs: d.OptionIDs}, nil

	default:
		return nil, ErrMalformedPayload
	}
}

// FromAnswerPayload converts a typed payload back into the wire form.
func FromAnswerPayload(payload models.AnswerPayload) AnswerPayloadDTO {
	switch p := payload.(type) {
	case models.TextAnswer:
		text := p.Text
		return AnswerPayloadDTO{Variant: models.VariantShortAnswer, Text: &text}

	case models.ChoiceAnswer:
		id := p.OptionID
		return AnswerPayloadDTO{Variant: p.Tag, OptionID: &id}

	case models.SelectionAnswer:
		return AnswerPayloadDTO{Variant: models.VariantMultiSelect, OptionIDs: p.OptionIDs}

	case models.RankingAnswer:
		return AnswerPayloadDTO{Variant: models.VariantRanking, OptionIDs: p.OptionIDs}

	default:
		return AnswerPayloadDTO{}
	}
}

// AnswerDTO represents an answer with its payload in API responses
type AnswerDTO struct {
	ID            uint64           `json:"id"`
	ApplicationID uint64           `json:"application_id"`
	QuestionID    uint64           `json:"question_id"`
	Payload       AnswerPayloadDTO `json:"payload"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ToAnswerDTO converts an answer and its payload to DTO
func ToAnswerDTO(answer models.Answer, payload models.AnswerPayload) AnswerDTO {
	return AnswerDTO{
		ID:            answer.ID,
		ApplicationID: answer.ApplicationID,
		QuestionID:    answer.QuestionID,
		Payload:       FromAnswerPayload(payload),
		CreatedAt:     answer.CreatedAt,
		UpdatedAt:     answer.UpdatedAt,
	}
}
