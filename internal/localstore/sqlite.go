package localstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS slots (
	name       TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteStore keeps slots in a single-table SQLite database. It trades the
// file backend's grep-ability for durable writes in one transaction.
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("localstore: db path is required")
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: open %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("localstore: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(slot string) ([]byte, error) {
	var value []byte
	err := s.db.Get(&value, `SELECT value FROM slots WHERE name = ?`, slot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoValue
		}
		return nil, fmt.Errorf("localstore: read slot %q: %w", slot, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(slot string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO slots (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		slot, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("localstore: write slot %q: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(slot string) error {
	if _, err := s.db.Exec(`DELETE FROM slots WHERE name = ?`, slot); err != nil {
		return fmt.Errorf("localstore: delete slot %q: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
