// Package store persists workspace layout snapshots in sqlite so the
// last arrangement survives restarts.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

// LastLabel is the label under which the auto-saved layout lives.
const LastLabel = "last"

// Snapshot is one saved layout: the tree shape as presets yaml plus
// which pre-order leaf positions held sessions. Sessions themselves
// are live processes and do not survive a restart; restore respawns
// shells into the occupied positions.
type Snapshot struct {
	ID         string
	Label      string
	LayoutYAML string
	FocusIndex int
	Occupied   []int
	SavedAt    time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot database at path and
// applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSnapshot inserts or replaces the snapshot stored under its label.
func (s *Store) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	if snap.Label == "" {
		return fmt.Errorf("snapshot has no label")
	}
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now().UTC()
	}

	occupied, err := json.Marshal(snap.Occupied)
	if err != nil {
		return fmt.Errorf("encode occupied: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO snapshots(snapshot_id, label, layout_yaml, focus_index, occupied_json, saved_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(label) DO UPDATE SET
	layout_yaml=excluded.layout_yaml,
	focus_index=excluded.focus_index,
	occupied_json=excluded.occupied_json,
	saved_at=excluded.saved_at`,
		snap.ID, snap.Label, snap.LayoutYAML, snap.FocusIndex, string(occupied), ts(snap.SavedAt))
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", snap.Label, err)
	}
	return nil
}

// LoadSnapshot returns the snapshot stored under label, or ErrNotFound.
func (s *Store) LoadSnapshot(ctx context.Context, label string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT snapshot_id, label, layout_yaml, focus_index, occupied_json, saved_at
FROM snapshots WHERE label = ?`, label)

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot %q: %w", label, err)
	}
	return snap, nil
}

// ListSnapshots returns all snapshots, most recently saved first.
func (s *Store) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT snapshot_id, label, layout_yaml, focus_index, occupied_json, saved_at
FROM snapshots ORDER BY saved_at DESC, label ASC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// DeleteSnapshot removes the snapshot under label, or ErrNotFound.
func (s *Store) DeleteSnapshot(ctx context.Context, label string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE label = ?`, label)
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", label, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (Snapshot, error) {
	var snap Snapshot
	var occupied, savedAt string
	if err := row.Scan(&snap.ID, &snap.Label, &snap.LayoutYAML, &snap.FocusIndex, &occupied, &savedAt); err != nil {
		return Snapshot{}, err
	}
	if err := json.Unmarshal([]byte(occupied), &snap.Occupied); err != nil {
		return Snapshot{}, fmt.Errorf("decode occupied: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse saved_at: %w", err)
	}
	snap.SavedAt = t
	return snap, nil
}

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
