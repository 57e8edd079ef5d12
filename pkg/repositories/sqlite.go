package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/lockstep/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	scripts, err := migrations("sqlite")
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, migration := range scripts {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %w", i+1, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveMatch(ctx context.Context, match *models.Match) error {
	q := `
	INSERT OR REPLACE INTO matches (match_id, room, role, seed, difficulty, frames, desyncs, end_reason, started_at, ended_at, final_state)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q,
		match.ID, match.Room, match.Role, match.Seed, match.Difficulty, match.Frames, match.Desyncs,
		match.EndReason, match.StartedAt.UnixMilli(), match.EndedAt.UnixMilli(), match.FinalState,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) ListMatches(ctx context.Context, limit int) ([]*models.Match, error) {
	q := `
	SELECT match_id, room, role, seed, difficulty, frames, desyncs, end_reason, started_at, ended_at, final_state
	FROM matches ORDER BY ended_at DESC LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %v", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := scanSQLiteMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %v", err)
	}

	return matches, nil
}

func (r *SQLiteRepository) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	q := `
	SELECT match_id, room, role, seed, difficulty, frames, desyncs, end_reason, started_at, ended_at, final_state
	FROM matches WHERE match_id = ?;
	`
	match, err := scanSQLiteMatch(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &ErrNotFound{MatchID: id}
		}
		return nil, err
	}
	return match, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSQLiteMatch(row scanner) (*models.Match, error) {
	match := &models.Match{}
	var startedAt, endedAt int64
	err := row.Scan(
		&match.ID, &match.Room, &match.Role, &match.Seed, &match.Difficulty, &match.Frames, &match.Desyncs,
		&match.EndReason, &startedAt, &endedAt, &match.FinalState,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan match: %v", err)
	}
	match.StartedAt = time.UnixMilli(startedAt)
	match.EndedAt = time.UnixMilli(endedAt)
	return match, nil
}
