package session

import (
	"errors"
	"strings"

	"github.com/stemsi/quizgo/internal/model"
)

// Ledger errors.
var (
	// ErrUnknownQuestion is returned for a question id outside the
	// session's sequence. The ledger is left untouched.
	ErrUnknownQuestion = errors.New("question is not part of this session")
	// ErrResponseShape is returned when the response does not fit the
	// question's type (missing option id, empty text, wrong variant).
	ErrResponseShape = errors.New("response does not match the question type")
)

// Response is a user's answer to one question. Exactly one field is
// meaningful: SelectedOptionID for CHOICE, Text for TEXT_ENTRY.
type Response struct {
	SelectedOptionID string
	Text             string
}

// LedgerEntry is the latest recorded response for one question,
// graded at record time.
type LedgerEntry struct {
	QuestionID       string
	QuestionType     model.QuestionType
	SelectedOptionID string // CHOICE only
	AnswerText       string // TEXT_ENTRY only, trimmed
	IsCorrect        bool
}

// Ledger maps question id to the user's latest graded response.
// Recording twice for the same id replaces the prior entry; revisiting
// a question therefore re-displays exactly what was stored. A ledger is
// owned by one session and never shared.
type Ledger struct {
	questions map[string]*model.Question
	entries   map[string]LedgerEntry
}

func newLedger(questions []model.Question) *Ledger {
	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}
	return &Ledger{
		questions: byID,
		entries:   make(map[string]LedgerEntry, len(questions)),
	}
}

// Record validates resp against the question's type, grades it, and
// stores the entry, overwriting any prior one for the same id.
func (l *Ledger) Record(questionID string, resp Response) (LedgerEntry, error) {
	q, ok := l.questions[questionID]
	if !ok {
		return LedgerEntry{}, ErrUnknownQuestion
	}

	entry := LedgerEntry{
		QuestionID:   questionID,
		QuestionType: q.QuestionType,
	}

	switch q.QuestionType {
	case model.QuestionTypeChoice:
		if resp.SelectedOptionID == "" || resp.Text != "" {
			return LedgerEntry{}, ErrResponseShape
		}
		opt := q.OptionByID(resp.SelectedOptionID)
		if opt == nil {
			return LedgerEntry{}, ErrResponseShape
		}
		entry.SelectedOptionID = opt.ID
		entry.IsCorrect = opt.IsCorrect

	case model.QuestionTypeTextEntry:
		text := strings.TrimSpace(resp.Text)
		if text == "" || resp.SelectedOptionID != "" {
			return LedgerEntry{}, ErrResponseShape
		}
		entry.AnswerText = text
		entry.IsCorrect = strings.EqualFold(text, q.CorrectAnswer)

	default:
		return LedgerEntry{}, ErrResponseShape
	}

	l.entries[questionID] = entry
	return entry, nil
}

// EntryFor returns the current entry for questionID, if any.
func (l *Ledger) EntryFor(questionID string) (LedgerEntry, bool) {
	entry, ok := l.entries[questionID]
	return entry, ok
}

// Len is the number of answered questions.
func (l *Ledger) Len() int { return len(l.entries) }

// CorrectCount is the number of entries graded correct.
func (l *Ledger) CorrectCount() int {
	n := 0
	for _, e := range l.entries {
		if e.IsCorrect {
			n++
		}
	}
	return n
}
