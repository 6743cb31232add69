// Package results keeps a Postgres-backed history of finished games.
package results

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/flagbot/quiz"
)

// Entry is one leaderboard row.
type Entry struct {
	UserID     string    `db:"user_id" json:"user_id"`
	Difficulty string    `db:"difficulty" json:"difficulty"`
	Score      int       `db:"score" json:"score"`
	Total      int       `db:"total" json:"total"`
	FinishedAt time.Time `db:"finished_at" json:"finished_at"`
}

// Store records finished games and serves the leaderboard.
type Store struct {
	db *sqlx.DB
}

// New constructs a results store over an open database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Record persists one finished game. Implements quiz.Recorder.
func (s *Store) Record(ctx context.Context, res quiz.GameResult) error {
	const q = `
		INSERT INTO game_results (user_id, difficulty, score, total, finished_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.db.ExecContext(ctx, q,
		res.UserID, string(res.Difficulty), res.Score, res.Total, res.FinishedAt,
	); err != nil {
		return fmt.Errorf("results: record: %w", err)
	}
	return nil
}

// Top returns the best finished games, highest score first, newest winning ties.
func (s *Store) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
		SELECT user_id, difficulty, score, total, finished_at
		FROM game_results
		ORDER BY score DESC, finished_at DESC
		LIMIT $1`
	entries := []Entry{}
	if err := s.db.SelectContext(ctx, &entries, q, limit); err != nil {
		return nil, fmt.Errorf("results: top: %w", err)
	}
	return entries, nil
}
