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
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations. Parent
// directories are created as needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SaveSnapshot stores the JSON encoding of payload under
// (kind, resolutionID), replacing any previous snapshot for that key.
func (s *SQLiteStore) SaveSnapshot(
	ctx context.Context,
	kind string,
	resolutionID int,
	payload interface{},
) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s snapshot: %w", kind, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, kind, resolution_id, payload, synced_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(kind, resolution_id)
		DO UPDATE SET payload = excluded.payload, synced_at = excluded.synced_at`,
		uuid.New().String(), kind, resolutionID,
		string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving %s snapshot: %w", kind, err)
	}

	return nil
}

// LoadSnapshot decodes the stored payload for (kind, resolutionID) into
// out and returns the sync time. ErrNoSnapshot means the key was never
// cached.
func (s *SQLiteStore) LoadSnapshot(
	ctx context.Context,
	kind string,
	resolutionID int,
	out interface{},
) (time.Time, error) {
	var row struct {
		Payload  string    `db:"payload"`
		SyncedAt time.Time `db:"synced_at"`
	}

	err := s.db.GetContext(ctx, &row,
		"SELECT payload, synced_at FROM snapshots WHERE kind = ? AND resolution_id = ?",
		kind, resolutionID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("loading %s snapshot: %w", kind, err)
	}

	if out != nil {
		if err := json.Unmarshal([]byte(row.Payload), out); err != nil {
			return time.Time{}, fmt.Errorf("unmarshaling %s snapshot: %w", kind, err)
		}
	}

	return row.SyncedAt, nil
}

// PurgeResolution drops every per-goal snapshot for a deleted goal.
// Global snapshots are left alone; the next successful fetch rewrites
// them anyway.
func (s *SQLiteStore) PurgeResolution(ctx context.Context, resolutionID int) error {
	if resolutionID == GlobalID {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM snapshots WHERE resolution_id = ?", resolutionID,
	)
	if err != nil {
		return fmt.Errorf("purging snapshots for resolution %d: %w", resolutionID, err)
	}
	return nil
}
