package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/lockstep/pkg/log"
	"github.com/cbodonnell/lockstep/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database and applies the migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	scripts, err := migrations("postgres")
	if err != nil {
		conn.Close(ctx)
		return nil, err
	}
	for i, migration := range scripts {
		if _, err := conn.Exec(ctx, migration); err != nil {
			conn.Close(ctx)
			return nil, fmt.Errorf("failed to execute migration %d: %w", i+1, err)
		}
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveMatch(ctx context.Context, match *models.Match) error {
	q := `
	INSERT INTO matches (match_id, room, role, seed, difficulty, frames, desyncs, end_reason, started_at, ended_at, final_state)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (match_id) DO UPDATE SET frames = $6, desyncs = $7, end_reason = $8, ended_at = $10, final_state = $11;
	`
	_, err := r.conn.Exec(ctx, q,
		match.ID, match.Room, match.Role, int64(match.Seed), int64(match.Difficulty), match.Frames, match.Desyncs,
		match.EndReason, match.StartedAt.UnixMilli(), match.EndedAt.UnixMilli(), match.FinalState,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %v", err)
	}

	return nil
}

func (r *PostgresRepository) ListMatches(ctx context.Context, limit int) ([]*models.Match, error) {
	q := `
	SELECT match_id::text, room, role, seed, difficulty, frames, desyncs, end_reason, started_at, ended_at, final_state
	FROM matches ORDER BY ended_at DESC LIMIT $1;
	`
	rows, err := r.conn.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %v", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := scanPostgresMatch(rows)
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

func (r *PostgresRepository) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	q := `
	SELECT match_id::text, room, role, seed, difficulty, frames, desyncs, end_reason, started_at, ended_at, final_state
	FROM matches WHERE match_id = $1;
	`
	match, err := scanPostgresMatch(r.conn.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{MatchID: id}
		}
		return nil, err
	}
	return match, nil
}

func scanPostgresMatch(row pgx.Row) (*models.Match, error) {
	match := &models.Match{}
	var seed, difficulty, startedAt, endedAt int64
	err := row.Scan(
		&match.ID, &match.Room, &match.Role, &seed, &difficulty, &match.Frames, &match.Desyncs,
		&match.EndReason, &startedAt, &endedAt, &match.FinalState,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan match: %v", err)
	}
	match.Seed = uint32(seed)
	match.Difficulty = uint32(difficulty)
	match.StartedAt = time.UnixMilli(startedAt)
	match.EndedAt = time.UnixMilli(endedAt)
	return match, nil
}
