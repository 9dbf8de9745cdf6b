package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/stemsi/quizgo/internal/model"
)

// Store is a local read-cache of completed attempts. The backend's
// history API stays the source of truth; this cache lets the history
// screen render instantly and survive being offline. It never queues
// unsubmitted results — only acknowledged records are written.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	test_id         TEXT NOT NULL,
	test_name       TEXT NOT NULL DEFAULT '',
	score           INTEGER NOT NULL,
	total_questions INTEGER NOT NULL,
	correct_answers INTEGER NOT NULL,
	submitted_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_attempts_user ON attempts (user_id, submitted_at DESC);
`

// Open creates or opens the cache at path and ensures the schema.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Store{
		db:  db,
		log: log.With().Str("component", "history_store").Logger(),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveAttempt upserts an acknowledged attempt record.
func (s *Store) SaveAttempt(ctx context.Context, rec model.HistoryRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, user_id, test_id, test_name, score, total_questions, correct_answers, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			score = excluded.score,
			total_questions = excluded.total_questions,
			correct_answers = excluded.correct_answers,
			submitted_at = excluded.submitted_at`,
		rec.ID, rec.UserID, rec.TestID, rec.TestName,
		rec.Score, rec.TotalQuestions, rec.CorrectAnswers, rec.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	s.log.Debug().Str("attempt_id", rec.ID).Str("test_id", rec.TestID).Msg("Attempt cached")
	return nil
}

// ListByUser returns the user's cached attempts, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]model.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, test_id, test_name, score, total_questions, correct_answers, submitted_at
		 FROM attempts
		 WHERE user_id = ?
		 ORDER BY submitted_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var recs []model.HistoryRecord
	for rows.Next() {
		var rec model.HistoryRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.TestID, &rec.TestName,
			&rec.Score, &rec.TotalQuestions, &rec.CorrectAnswers, &rec.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// BestScore returns the user's highest cached score for a test, with
// ok=false when no attempt exists.
func (s *Store) BestScore(ctx context.Context, userID, testID string) (int, bool, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(score) FROM attempts WHERE user_id = ? AND test_id = ?`,
		userID, testID,
	).Scan(&score)
	if err != nil {
		return 0, false, fmt.Errorf("best score: %w", err)
	}
	if !score.Valid {
		return 0, false, nil
	}
	return int(score.Int64), true, nil
}
