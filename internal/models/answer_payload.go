package models

// AnswerPayload is the typed value of an answer. Like QuestionPayload the
// implementation set is closed; storage and reassembly switch exhaustively
// over the four concrete types.
type AnswerPayload interface {
	Variant() QuestionVariant

	answerPayload()
}

// TextAnswer is the payload of a ShortAnswer response.
type TextAnswer struct {
	Text string `json:"text"`
}

func (TextAnswer) Variant() QuestionVariant { return VariantShortAnswer }
func (TextAnswer) answerPayload()           {}

// ChoiceAnswer is the single selected option of a MultiChoice or DropDown
// response. Tag records which of the two.
type ChoiceAnswer struct {
	Tag      QuestionVariant `json:"tag"`
	OptionID uint64          `json:"option_id"`
}

func (a ChoiceAnswer) Variant() QuestionVariant { return a.Tag }
func (ChoiceAnswer) answerPayload()             {}

// SelectionAnswer is the option set of a MultiSelect response. Order is not
// significant.
type SelectionAnswer struct {
	OptionIDs []uint64 `json:"option_ids"`
}

func (SelectionAnswer) Variant() QuestionVariant { return VariantMultiSelect }
func (SelectionAnswer) answerPayload()           {}

// RankingAnswer is the ordered option list of a Ranking response. Order is
// the applicant's ranking and must survive storage unchanged.
type RankingAnswer struct {
	OptionIDs []uint64 `json:"option_ids"`
}

func (RankingAnswer) Variant() QuestionVariant { return VariantRanking }
func (RankingAnswer) answerPayload()           {}
