// Package history keeps a local SQLite record of builds and their compile
// units, so `vcustomizer history` can show what was compiled and why the
// last build failed.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Build statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Item statuses.
const (
	ItemOK     = "ok"
	ItemFailed = "failed"
)

var (
	// ErrUnknownBuild is returned for a build ID that was never recorded.
	ErrUnknownBuild = errors.New("unknown build")
	// ErrAmbiguousBuild is returned when an ID prefix matches several builds.
	ErrAmbiguousBuild = errors.New("ambiguous build id")
)

const schema = `
CREATE TABLE IF NOT EXISTS builds (
    id          TEXT PRIMARY KEY,
    started_at  INTEGER NOT NULL,
    finished_at INTEGER,
    status      TEXT NOT NULL,
    classes     TEXT NOT NULL DEFAULT '',
    items_total INTEGER NOT NULL DEFAULT 0,
    archive     TEXT NOT NULL DEFAULT '',
    error       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS build_items (
    build_id TEXT NOT NULL REFERENCES builds(id),
    seq      INTEGER NOT NULL,
    script   TEXT NOT NULL,
    status   TEXT NOT NULL,
    output   TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (build_id, seq)
);
`

// Build is one recorded pipeline run.
type Build struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time // zero while running
	Status     string
	Classes    string
	Total      int
	Done       int
	Archive    string
	Error      string
}

// Item is one recorded compile unit.
type Item struct {
	Seq    int
	Script string
	Status string
	Output string
}

// Store is the SQLite-backed build history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Begin records a new running build. An empty id is replaced by a fresh
// UUID; the ID used is returned.
func (s *Store) Begin(ctx context.Context, id, classes string, total int) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	const q = `INSERT INTO builds (id, started_at, status, classes, items_total) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, id, s.now().UnixMilli(), StatusRunning, classes, total); err != nil {
		return "", fmt.Errorf("history: begin build: %w", err)
	}
	return id, nil
}

// RecordItem stores the outcome of one compile unit.
func (s *Store) RecordItem(ctx context.Context, buildID string, seq int, script string, itemErr error, output string) error {
	status := ItemOK
	if itemErr != nil {
		status = ItemFailed
	}
	const q = `INSERT INTO build_items (build_id, seq, script, status, output) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, buildID, seq, script, status, output); err != nil {
		return fmt.Errorf("history: record item %d of %s: %w", seq, buildID, err)
	}
	return nil
}

// Finish marks a build succeeded (buildErr nil) or failed.
func (s *Store) Finish(ctx context.Context, buildID, archive string, buildErr error) error {
	status, msg := StatusSucceeded, ""
	if buildErr != nil {
		status, msg = StatusFailed, buildErr.Error()
	}
	const q = `UPDATE builds SET finished_at = ?, status = ?, archive = ?, error = ? WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q, s.now().UnixMilli(), status, archive, msg, buildID)
	if err != nil {
		return fmt.Errorf("history: finish build %s: %w", buildID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("history: finish build %s: %w", buildID, ErrUnknownBuild)
	}
	return nil
}

// Recent returns up to n builds, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Build, error) {
	const q = `
		SELECT b.id, b.started_at, b.finished_at, b.status, b.classes, b.items_total, b.archive, b.error,
		       (SELECT COUNT(*) FROM build_items i WHERE i.build_id = b.id AND i.status = 'ok')
		FROM builds b
		ORDER BY b.started_at DESC, b.rowid DESC
		LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, fmt.Errorf("history: list builds: %w", err)
	}
	defer rows.Close()

	var out []Build
	for rows.Next() {
		var (
			b        Build
			started  int64
			finished sql.NullInt64
		)
		if err := rows.Scan(&b.ID, &started, &finished, &b.Status, &b.Classes, &b.Total, &b.Archive, &b.Error, &b.Done); err != nil {
			return nil, fmt.Errorf("history: scan build: %w", err)
		}
		b.StartedAt = time.UnixMilli(started)
		if finished.Valid {
			b.FinishedAt = time.UnixMilli(finished.Int64)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ResolveID expands a build ID prefix, as printed by the history listing,
// to the full ID.
func (s *Store) ResolveID(ctx context.Context, prefix string) (string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM builds WHERE substr(id, 1, ?) = ? LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("history: resolve %s: %w", prefix, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("history: scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("history: %s: %w", prefix, ErrUnknownBuild)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("history: %s: %w", prefix, ErrAmbiguousBuild)
	}
}

// Items returns the compile units of a build in queue order.
func (s *Store) Items(ctx context.Context, buildID string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, script, status, output FROM build_items WHERE build_id = ? ORDER BY seq`, buildID)
	if err != nil {
		return nil, fmt.Errorf("history: list items of %s: %w", buildID, err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.Seq, &it.Script, &it.Status, &it.Output); err != nil {
			return nil, fmt.Errorf("history: scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
