package models

// QuestionPayload is the variant-specific part of a question. The set of
// implementations is closed: code that consumes a payload type-switches over
// ShortAnswerSpec and OptionListSpec and treats anything else as a bug.
type QuestionPayload interface {
	// Variant returns the tag the payload belongs to.
	Variant() QuestionVariant

	questionPayload()
}

// ShortAnswerSpec is the payload of a free-text question. It carries no
// structure; the text limit lives on the question row itself.
type ShortAnswerSpec struct{}

func (ShortAnswerSpec) Variant() QuestionVariant { return VariantShortAnswer }
func (ShortAnswerSpec) questionPayload()         {}

// OptionInput is one caller-supplied option for an option-based question.
type OptionInput struct {
	DisplayOrder int    `json:"display_order"`
	Text         string `json:"text"`
}

// OptionListSpec is the payload shared by the four option-based variants.
// Tag records which one; it must be option-based.
type OptionListSpec struct {
	Tag     QuestionVariant `json:"tag"`
	Options []OptionInput   `json:"options"`
}

func (s OptionListSpec) Variant() QuestionVariant { return s.Tag }
func (OptionListSpec) questionPayload()           {}
