package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/quizgo/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache", "history.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id, userID, testID string, score int, at time.Time) model.HistoryRecord {
	return model.HistoryRecord{
		ID:             id,
		UserID:         userID,
		TestID:         testID,
		TestName:       "Latihan " + testID,
		Score:          score,
		TotalQuestions: 4,
		CorrectAnswers: score * 4 / 100,
		SubmittedAt:    at,
	}
}

func TestSaveAndListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	for i, rec := range []model.HistoryRecord{
		record("h1", "user-7", "test-1", 50, base),
		record("h2", "user-7", "test-1", 75, base.Add(time.Hour)),
		record("h3", "user-other", "test-1", 100, base.Add(2*time.Hour)),
	} {
		if err := s.SaveAttempt(ctx, rec); err != nil {
			t.Fatalf("SaveAttempt[%d]: %v", i, err)
		}
	}

	recs, err := s.ListByUser(ctx, "user-7")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].ID != "h2" || recs[1].ID != "h1" {
		t.Errorf("order = [%s %s], want newest first", recs[0].ID, recs[1].ID)
	}
	if recs[0].TestName != "Latihan test-1" || recs[0].Score != 75 {
		t.Errorf("round-trip mismatch: %+v", recs[0])
	}
}

func TestSaveAttemptUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	if err := s.SaveAttempt(ctx, record("h1", "user-7", "test-1", 50, at)); err != nil {
		t.Fatalf("SaveAttempt: %v", err)
	}
	// Same acknowledgement replayed with corrected fields.
	if err := s.SaveAttempt(ctx, record("h1", "user-7", "test-1", 75, at.Add(time.Minute))); err != nil {
		t.Fatalf("SaveAttempt replay: %v", err)
	}

	recs, err := s.ListByUser(ctx, "user-7")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1 after upsert", len(recs))
	}
	if recs[0].Score != 75 {
		t.Errorf("score = %d, want 75", recs[0].Score)
	}
}

func TestBestScore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	if _, ok, err := s.BestScore(ctx, "user-7", "test-1"); err != nil || ok {
		t.Fatalf("BestScore empty = (%v, %v), want no attempt", ok, err)
	}

	for i, score := range []int{50, 100, 75} {
		rec := record("h"+string(rune('1'+i)), "user-7", "test-1", score, base.Add(time.Duration(i)*time.Hour))
		if err := s.SaveAttempt(ctx, rec); err != nil {
			t.Fatalf("SaveAttempt: %v", err)
		}
	}

	best, ok, err := s.BestScore(ctx, "user-7", "test-1")
	if err != nil || !ok {
		t.Fatalf("BestScore = (%v, %v)", ok, err)
	}
	if best != 100 {
		t.Errorf("best = %d, want 100", best)
	}

	if _, ok, _ := s.BestScore(ctx, "user-7", "test-other"); ok {
		t.Error("BestScore leaked across tests")
	}
}
