package model

// QuestionType discriminates how a question is presented and graded.
type QuestionType string

const (
	QuestionTypeChoice    QuestionType = "CHOICE"
	QuestionTypeTextEntry QuestionType = "TEXT_ENTRY"
)

// AnswerOption is a single selectable option of a CHOICE question.
// Its ID is unique within the owning question only.
type AnswerOption struct {
	ID        string `json:"id" validate:"required"`
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is one quiz question as served to a session. Immutable once
// loaded; only the presentation order of Options is randomized per session.
type Question struct {
	ID           string         `json:"id" validate:"required"`
	Content      string         `json:"content" validate:"required"`
	ImagePath    string         `json:"image_path,omitempty"`
	AudioPath    string         `json:"audio_path,omitempty"`
	QuestionType QuestionType   `json:"question_type" validate:"required,oneof=CHOICE TEXT_ENTRY"`
	Options      []AnswerOption `json:"options,omitempty" validate:"omitempty,dive"`
	// CorrectAnswer is the canonical string for TEXT_ENTRY questions.
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

// CorrectOption returns the correct option of a CHOICE question,
// or nil when no option is flagged (TEXT_ENTRY questions).
func (q *Question) CorrectOption() *AnswerOption {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// OptionByID returns the option with the given id, or nil if absent.
func (q *Question) OptionByID(id string) *AnswerOption {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}
