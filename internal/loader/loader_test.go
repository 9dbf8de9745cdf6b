package loader

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stemsi/quizgo/internal/api"
	"github.com/stemsi/quizgo/internal/model"
)

type fakeFetcher struct {
	questions []model.Question
	err       error
}

func (f *fakeFetcher) FetchQuestions(ctx context.Context, testID string) ([]model.Question, error) {
	return f.questions, f.err
}

func sampleQuestions() []model.Question {
	return []model.Question{
		{
			ID: "q1", Content: "satu", QuestionType: model.QuestionTypeChoice,
			Options: []model.AnswerOption{
				{ID: "a", Text: "A"},
				{ID: "b", Text: "B", IsCorrect: true},
				{ID: "c", Text: "C"},
				{ID: "d", Text: "D"},
			},
		},
		{ID: "q2", Content: "dua", QuestionType: model.QuestionTypeTextEntry, CorrectAnswer: " Dua "},
		{
			ID: "q3", Content: "tiga", QuestionType: model.QuestionTypeChoice,
			AudioPath: "audio/q3.mp3",
			Options: []model.AnswerOption{
				{ID: "x", Text: "X", IsCorrect: true},
				{ID: "y", Text: "Y"},
			},
		},
	}
}

func newTestLoader(f *fakeFetcher, seed int64) *Loader {
	return New(f, rand.New(rand.NewSource(seed)), zerolog.Nop())
}

func TestLoadPreservesIdentitiesThroughShuffle(t *testing.T) {
	l := newTestLoader(&fakeFetcher{questions: sampleQuestions()}, 42)

	questions, err := l.Load(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}

	seen := map[string]bool{}
	for _, q := range questions {
		seen[q.ID] = true
		if q.QuestionType != model.QuestionTypeChoice {
			continue
		}
		correct := q.CorrectOption()
		if correct == nil {
			t.Fatalf("question %s lost its correct option in the shuffle", q.ID)
		}
		// Correctness flags travel with their option identity.
		switch q.ID {
		case "q1":
			if correct.ID != "b" {
				t.Errorf("q1 correct option = %s, want b", correct.ID)
			}
		case "q3":
			if correct.ID != "x" {
				t.Errorf("q3 correct option = %s, want x", correct.ID)
			}
		}
	}
	for _, id := range []string{"q1", "q2", "q3"} {
		if !seen[id] {
			t.Errorf("question %s missing after shuffle", id)
		}
	}
}

func TestLoadNormalizesTextEntry(t *testing.T) {
	l := newTestLoader(&fakeFetcher{questions: sampleQuestions()}, 1)

	questions, err := l.Load(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, q := range questions {
		if q.ID == "q2" && q.CorrectAnswer != "Dua" {
			t.Errorf("canonical answer not trimmed: %q", q.CorrectAnswer)
		}
	}
}

func TestLoadDropsMalformedQuestions(t *testing.T) {
	broken := []model.Question{
		// Two correct options.
		{
			ID: "bad1", Content: "x", QuestionType: model.QuestionTypeChoice,
			Options: []model.AnswerOption{
				{ID: "a", Text: "A", IsCorrect: true},
				{ID: "b", Text: "B", IsCorrect: true},
			},
		},
		// No correct option.
		{
			ID: "bad2", Content: "x", QuestionType: model.QuestionTypeChoice,
			Options: []model.AnswerOption{
				{ID: "a", Text: "A"},
				{ID: "b", Text: "B"},
			},
		},
		// Single option.
		{
			ID: "bad3", Content: "x", QuestionType: model.QuestionTypeChoice,
			Options: []model.AnswerOption{{ID: "a", Text: "A", IsCorrect: true}},
		},
		// Blank canonical answer.
		{ID: "bad4", Content: "x", QuestionType: model.QuestionTypeTextEntry, CorrectAnswer: "   "},
		// Unknown type.
		{ID: "bad5", Content: "x", QuestionType: "ESSAY"},
		// The one good record.
		{ID: "ok", Content: "x", QuestionType: model.QuestionTypeTextEntry, CorrectAnswer: "ya"},
	}

	l := newTestLoader(&fakeFetcher{questions: broken}, 1)
	questions, err := l.Load(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != "ok" {
		t.Fatalf("got %d questions, want only the valid one", len(questions))
	}
}

func TestLoadAllMalformedIsNoQuestions(t *testing.T) {
	l := newTestLoader(&fakeFetcher{questions: []model.Question{{ID: "bad"}}}, 1)

	if _, err := l.Load(context.Background(), "t1"); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestLoadSurfacesFetchFailureAsRetryable(t *testing.T) {
	fetchErr := &api.NetworkError{Err: errors.New("dial tcp: refused")}
	l := newTestLoader(&fakeFetcher{err: fetchErr}, 1)

	_, err := l.Load(context.Background(), "t1")
	if err == nil {
		t.Fatal("expected error")
	}
	var ne *api.NetworkError
	if !errors.As(err, &ne) {
		t.Errorf("fetch failure lost its type: %v", err)
	}
	if !api.IsRetryable(err) {
		t.Error("fetch failure must stay retryable through wrapping")
	}
}

// Shuffled output never aliases the fetched slice's option arrays.
func TestLoadCopiesOptions(t *testing.T) {
	raw := sampleQuestions()
	l := newTestLoader(&fakeFetcher{questions: raw}, 7)

	questions, err := l.Load(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := range questions {
		if questions[i].ID != "q1" {
			continue
		}
		questions[i].Options[0].Text = "mutated"
	}
	if raw[0].Options[0].Text == "mutated" {
		t.Error("loader output aliases the raw question options")
	}
}
