package loader

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/quizgo/internal/model"
	"github.com/stemsi/quizgo/internal/validator"
)

// Domain Errors
var (
	// ErrNoQuestions means the test has no usable questions after
	// normalization; a session cannot be opened from it.
	ErrNoQuestions = errors.New("test has no usable questions")
)

// QuestionFetcher is the backend collaborator the loader consumes.
type QuestionFetcher interface {
	FetchQuestions(ctx context.Context, testID string) ([]model.Question, error)
}

// Loader fetches and prepares the question sequence of a test. It holds
// no per-test state: every Load call is independent, and its output is
// handed to a session as that session's fixed question order.
type Loader struct {
	fetcher QuestionFetcher
	rng     *rand.Rand
	log     zerolog.Logger
}

// New creates a loader. rng may be nil, in which case a time-seeded
// source is used; tests inject a fixed seed.
func New(fetcher QuestionFetcher, rng *rand.Rand, log zerolog.Logger) *Loader {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Loader{
		fetcher: fetcher,
		rng:     rng,
		log:     log.With().Str("component", "loader").Logger(),
	}
}

// Load fetches the question list for testID, drops malformed records,
// and randomizes both the question order and, per CHOICE question, the
// option order. Option identities travel with their correctness flags
// through the permutation. Fetch failures surface unchanged
// (*api.NetworkError / *api.ServerError) so the caller can offer a retry.
func (l *Loader) Load(ctx context.Context, testID string) ([]model.Question, error) {
	raw, err := l.fetcher.FetchQuestions(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}

	questions := make([]model.Question, 0, len(raw))
	for i := range raw {
		q, ok := l.normalize(raw[i])
		if !ok {
			l.log.Warn().
				Str("test_id", testID).
				Str("question_id", raw[i].ID).
				Msg("Dropping malformed question")
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	l.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	for i := range questions {
		if questions[i].QuestionType != model.QuestionTypeChoice {
			continue
		}
		opts := questions[i].Options
		l.rng.Shuffle(len(opts), func(a, b int) {
			opts[a], opts[b] = opts[b], opts[a]
		})
	}

	l.log.Debug().
		Str("test_id", testID).
		Int("questions", len(questions)).
		Msg("Question set loaded")
	return questions, nil
}

// normalize validates a raw question and returns a session-ready copy.
// CHOICE questions must carry at least two options with exactly one
// flagged correct; TEXT_ENTRY questions must carry a non-empty canonical
// answer. Options are copied so a shuffle never aliases the raw slice.
func (l *Loader) normalize(q model.Question) (model.Question, bool) {
	if fields := validator.Struct(q); fields != nil {
		return model.Question{}, false
	}
	q.Content = strings.TrimSpace(q.Content)

	switch q.QuestionType {
	case model.QuestionTypeChoice:
		if len(q.Options) < 2 {
			return model.Question{}, false
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return model.Question{}, false
		}
		q.Options = append([]model.AnswerOption(nil), q.Options...)
		q.CorrectAnswer = ""

	case model.QuestionTypeTextEntry:
		q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
		if q.CorrectAnswer == "" {
			return model.Question{}, false
		}
		q.Options = nil

	default:
		return model.Question{}, false
	}

	return q, true
}
