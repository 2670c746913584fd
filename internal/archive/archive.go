// Package archive stores generated game notes in Postgres so past write-ups
// can be retrieved without re-running the pipeline. The archive is optional;
// the server runs without it when no DATABASE_URL is configured.
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtsidelabs/gamenotes/internal/config"
)

// ErrNotFound is returned when no archived note matches the query.
var ErrNotFound = errors.New("archived note not found")

// Note is a stored game-notes document.
type Note struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"teamId"`
	TeamName  string    `json:"teamName"`
	Season    string    `json:"season"`
	Gender    string    `json:"gender"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Archive wraps a pgxpool.Pool with note storage helpers.
type Archive struct {
	pool *pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Archive, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Archive{pool: pool}, nil
}

// Close releases the underlying pool.
func (a *Archive) Close() {
	a.pool.Close()
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (a *Archive) HealthCheck(ctx context.Context) error {
	var n int
	return a.pool.QueryRow(ctx, "health_check").Scan(&n)
}

// Store inserts a generated note and returns its id.
func (a *Archive) Store(ctx context.Context, n Note) (int64, error) {
	var id int64
	err := a.pool.QueryRow(ctx, "insert_note",
		n.TeamID, n.TeamName, n.Season, n.Gender, n.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}
	return id, nil
}

// Get retrieves a single archived note by id.
func (a *Archive) Get(ctx context.Context, id int64) (Note, error) {
	var n Note
	err := a.pool.QueryRow(ctx, "note_by_id", id).Scan(
		&n.ID, &n.TeamID, &n.TeamName, &n.Season, &n.Gender, &n.Notes, &n.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, fmt.Errorf("get note %d: %w", id, err)
	}
	return n, nil
}

// ListByTeam returns the most recent notes for a team, newest first.
func (a *Archive) ListByTeam(ctx context.Context, teamID int64, limit int) ([]Note, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.pool.Query(ctx, "notes_by_team", teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notes for team %d: %w", teamID, err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.TeamID, &n.TeamName, &n.Season, &n.Gender, &n.Notes, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// registerPreparedStatements registers all statements the archive uses.
// Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		"health_check": "SELECT 1",

		"insert_note": `INSERT INTO game_notes (team_id, team_name, season, gender, notes)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,

		"note_by_id": `SELECT id, team_id, team_name, season, gender, notes, created_at
			FROM game_notes WHERE id = $1`,

		"notes_by_team": `SELECT id, team_id, team_name, season, gender, notes, created_at
			FROM game_notes WHERE team_id = $1 ORDER BY created_at DESC LIMIT $2`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
