package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stemsi/quizgo/internal/model"
)

// State enumerates session lifecycle states.
type State string

const (
	StateInProgress State = "IN_PROGRESS"
	StateSubmitting State = "SUBMITTING"
	StateSubmitted  State = "SUBMITTED"
	StateError      State = "ERROR"
)

// Domain Errors
var (
	// ErrIncompleteAnswer blocks Advance until the current question has
	// a complete answer. An expected, retryable user condition — the
	// session state is unchanged when it is returned.
	ErrIncompleteAnswer = errors.New("current question has no complete answer")
	// ErrSessionClosed rejects mutations once the session left IN_PROGRESS.
	ErrSessionClosed = errors.New("session is no longer in progress")
	// ErrAtFirstQuestion rejects Retreat at index 0.
	ErrAtFirstQuestion = errors.New("already at the first question")
)

// AudioStopper is the one slice of the audio controller the session
// needs: unconditional stop-and-release on every index change.
type AudioStopper interface {
	StopAndRelease()
}

// Session drives a user through a fixed, already-shuffled question
// sequence. It owns the ledger exclusively and is never resumed across
// runs — opening a test always constructs a fresh Session.
type Session struct {
	id     uuid.UUID
	testID string
	log    zerolog.Logger

	mu        sync.Mutex
	questions []model.Question
	ledger    *Ledger
	index     int
	state     State
	audio     AudioStopper
}

// New creates an IN_PROGRESS session over the given sequence.
func New(testID string, questions []model.Question, audio AudioStopper, log zerolog.Logger) (*Session, error) {
	if len(questions) == 0 {
		return nil, errors.New("session needs at least one question")
	}
	id := uuid.New()
	return &Session{
		id:        id,
		testID:    testID,
		questions: questions,
		ledger:    newLedger(questions),
		state:     StateInProgress,
		audio:     audio,
		log: log.With().
			Str("component", "session").
			Str("session_id", id.String()).
			Str("test_id", testID).
			Logger(),
	}, nil
}

// ID is the session's unique identifier, used as a generation token to
// discard stale async completions after the session is abandoned.
func (s *Session) ID() uuid.UUID { return s.id }

// TestID is the test this session plays.
func (s *Session) TestID() string { return s.testID }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Len is the total number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Index is the current question pointer.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Current returns the question at the pointer.
func (s *Session) Current() *model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &s.questions[s.index]
}

// Questions returns the session's fixed sequence, for review rendering.
func (s *Session) Questions() []model.Question { return s.questions }

// Answer records resp for the current question. The pointer does not
// move; re-answering replaces the prior ledger entry.
func (s *Session) Answer(resp Response) (LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return LedgerEntry{}, ErrSessionClosed
	}
	entry, err := s.ledger.Record(s.questions[s.index].ID, resp)
	if err != nil {
		return LedgerEntry{}, err
	}
	return entry, nil
}

// EntryFor exposes the recorded entry for a question, if any. Used to
// repopulate the answer widget when the user revisits a question.
func (s *Session) EntryFor(questionID string) (LedgerEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.EntryFor(questionID)
}

// CanAdvance reports whether the current question holds a complete
// answer: a selected option for CHOICE, non-empty text for TEXT_ENTRY.
func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canAdvanceLocked()
}

func (s *Session) canAdvanceLocked() bool {
	entry, ok := s.ledger.EntryFor(s.questions[s.index].ID)
	if !ok {
		return false
	}
	switch entry.QuestionType {
	case model.QuestionTypeChoice:
		return entry.SelectedOptionID != ""
	case model.QuestionTypeTextEntry:
		return entry.AnswerText != ""
	}
	return false
}

// Advance moves to the next question, stopping audio before the new
// question becomes current. On the last question it instead transitions
// to SUBMITTING and reports submitTriggered=true; the caller then runs
// the Submitter. ErrIncompleteAnswer leaves all state unchanged.
func (s *Session) Advance() (submitTriggered bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return false, ErrSessionClosed
	}
	if !s.canAdvanceLocked() {
		return false, ErrIncompleteAnswer
	}

	s.audio.StopAndRelease()

	if s.index == len(s.questions)-1 {
		s.state = StateSubmitting
		s.log.Info().
			Int("answered", s.ledger.Len()).
			Msg("Final question answered, entering submission")
		return true, nil
	}

	s.index++
	return false, nil
}

// Retreat moves back one question. The ledger is never mutated, so the
// earlier question re-displays its recorded answer.
func (s *Session) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrSessionClosed
	}
	if s.index == 0 {
		return ErrAtFirstQuestion
	}

	s.audio.StopAndRelease()
	s.index--
	return nil
}

// snapshotAnswers serializes the ledger in question-sequence order.
func (s *Session) snapshotAnswers() []model.UserAnswer {
	answers := make([]model.UserAnswer, 0, len(s.questions))
	for i := range s.questions {
		entry, ok := s.ledger.EntryFor(s.questions[i].ID)
		if !ok {
			continue
		}
		ua := model.UserAnswer{
			QuestionID:   entry.QuestionID,
			IsCorrect:    entry.IsCorrect,
			QuestionType: entry.QuestionType,
		}
		switch entry.QuestionType {
		case model.QuestionTypeChoice:
			selected := entry.SelectedOptionID
			ua.SelectedAnswerID = &selected
		case model.QuestionTypeTextEntry:
			text := entry.AnswerText
			ua.AnswerText = &text
		}
		answers = append(answers, ua)
	}
	return answers
}
