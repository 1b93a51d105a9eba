// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cardtable/wizard/internal/models"
)

// SQLiteStore persists each game as a JSON document row in a local database
// file. This is the default "local" mode.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	updated_at TEXT NOT NULL,
	state      TEXT NOT NULL
);`

// NewSQLiteStore opens (and creates if missing) the database file, with WAL
// journaling and a busy timeout so concurrent request handlers don't trip
// over the writer lock.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create games table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, g *models.GameState) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", g.GameID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO games (id, version, updated_at, state) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET version=excluded.version, updated_at=excluded.updated_at, state=excluded.state`,
		g.GameID, g.Version, g.LastUpdated, string(data))
	if err != nil {
		return fmt.Errorf("save game %s: %w", g.GameID, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, gameID string) (*models.GameState, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM games WHERE id = ?`, gameID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	var g models.GameState
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, fmt.Errorf("unmarshal game %s: %w", gameID, err)
	}
	return &g, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, gameID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, gameID); err != nil {
		return fmt.Errorf("delete game %s: %w", gameID, err)
	}
	return nil
}

func (s *SQLiteStore) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM games ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) LastModified(ctx context.Context, gameID string) (int64, error) {
	var version int64
	err := s.db.QueryRowContext(ctx, `SELECT version FROM games WHERE id = ?`, gameID).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("last modified %s: %w", gameID, err)
	}
	return version, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
