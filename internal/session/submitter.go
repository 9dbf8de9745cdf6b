package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stemsi/quizgo/internal/auth"
	"github.com/stemsi/quizgo/internal/model"
)

// Submitter errors.
var (
	// ErrSubmissionInFlight coalesces duplicate triggers: a second
	// Submit while one is running is rejected, never fired in parallel.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	// ErrNotReady rejects Submit for a session that has not reached its
	// final advance yet.
	ErrNotReady = errors.New("session is not ready for submission")
)

// HistoryPoster is the backend collaborator receiving the result.
type HistoryPoster interface {
	SubmitHistory(ctx context.Context, sub model.HistorySubmission) (*model.HistoryRecord, error)
}

// IdentityProvider resolves the submitting user. auth.ErrNoIdentity and
// auth.ErrTokenExpired surface unchanged so the caller can route to
// re-authentication while the ledger stays intact in memory.
type IdentityProvider interface {
	Identity() (*auth.Claims, error)
}

// Result is the reviewable bundle handed back after a successful
// submission: the acknowledged record plus everything the result
// screen needs to re-render the answered questions.
type Result struct {
	Record         *model.HistoryRecord
	Score          int
	CorrectCount   int
	TotalQuestions int
	Questions      []model.Question
	Answers        []model.UserAnswer
}

// Submitter posts a finished session's ledger to the history API
// exactly once. The payload is frozen on the first attempt; retries
// after failure re-send it byte-identically — no re-scoring, no
// re-shuffling.
type Submitter struct {
	api      HistoryPoster
	identity IdentityProvider
	log      zerolog.Logger

	mu       sync.Mutex
	inFlight bool
	payload  *model.HistorySubmission
}

// NewSubmitter creates a submitter.
func NewSubmitter(api HistoryPoster, identity IdentityProvider, log zerolog.Logger) *Submitter {
	return &Submitter{
		api:      api,
		identity: identity,
		log:      log.With().Str("component", "submitter").Logger(),
	}
}

// Submit scores s and posts the result. Valid in SUBMITTING (first
// attempt) and ERROR (retry, re-entering SUBMITTING). On success the
// session becomes SUBMITTED and read-only. On failure it moves to
// ERROR with the ledger preserved for an identical-payload retry.
func (sub *Submitter) Submit(ctx context.Context, s *Session) (*Result, error) {
	sub.mu.Lock()
	if sub.inFlight {
		sub.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}

	switch s.State() {
	case StateSubmitting:
		// First attempt, or a coalesced duplicate that lost the race.
	case StateError:
		s.reenterSubmitting()
	default:
		sub.mu.Unlock()
		return nil, ErrNotReady
	}

	if sub.payload == nil {
		payload, err := sub.buildPayload(s)
		if err != nil {
			sub.mu.Unlock()
			s.markError()
			return nil, err
		}
		sub.payload = payload
	}
	payload := *sub.payload
	sub.inFlight = true
	sub.mu.Unlock()

	defer func() {
		sub.mu.Lock()
		sub.inFlight = false
		sub.mu.Unlock()
	}()

	record, err := sub.api.SubmitHistory(ctx, payload)
	if err != nil {
		sub.log.Warn().Err(err).Str("test_id", payload.TestID).Msg("Submission failed")
		s.markError()
		return nil, fmt.Errorf("submit history: %w", err)
	}

	s.markSubmitted()
	sub.log.Info().
		Str("test_id", payload.TestID).
		Int("score", payload.Score).
		Int("correct", payload.CorrectAnswers).
		Msg("Result submitted")

	return &Result{
		Record:         record,
		Score:          payload.Score,
		CorrectCount:   payload.CorrectAnswers,
		TotalQuestions: payload.TotalQuestions,
		Questions:      s.Questions(),
		Answers:        payload.UserAnswers,
	}, nil
}

// buildPayload freezes the submission body: identity, score, and the
// serialized ledger in sequence order.
func (sub *Submitter) buildPayload(s *Session) (*model.HistorySubmission, error) {
	claims, err := sub.identity.Identity()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	correct := s.ledger.CorrectCount()
	total := len(s.questions)
	return &model.HistorySubmission{
		UserID:         claims.UserID,
		TestID:         s.testID,
		Score:          Score(correct, total),
		TotalQuestions: total,
		CorrectAnswers: correct,
		UserAnswers:    s.snapshotAnswers(),
	}, nil
}

func (s *Session) markSubmitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateSubmitted
}

func (s *Session) markError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		s.state = StateError
	}
}

func (s *Session) reenterSubmitting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateError {
		s.state = StateSubmitting
	}
}
