// internal/store/postgres.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cardtable/wizard/internal/models"
)

// PostgresStore persists each game as a JSONB document row, for deployments
// where several service instances share one database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS wizard_games (
	id         TEXT PRIMARY KEY,
	version    BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	state      JSONB NOT NULL
)`

// NewPostgresStore connects a pgx pool and ensures the games table exists.
func NewPostgresStore(ctx context.Context, connURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create wizard_games table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Save(ctx context.Context, g *models.GameState) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", g.GameID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO wizard_games (id, version, updated_at, state) VALUES ($1, $2, now(), $3)
		ON CONFLICT (id) DO UPDATE SET version=$2, updated_at=now(), state=$3`,
		g.GameID, g.Version, data)
	if err != nil {
		return fmt.Errorf("save game %s: %w", g.GameID, err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, gameID string) (*models.GameState, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT state FROM wizard_games WHERE id = $1`, gameID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	var g models.GameState
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("unmarshal game %s: %w", gameID, err)
	}
	return &g, nil
}

func (s *PostgresStore) Delete(ctx context.Context, gameID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM wizard_games WHERE id = $1`, gameID); err != nil {
		return fmt.Errorf("delete game %s: %w", gameID, err)
	}
	return nil
}

func (s *PostgresStore) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM wizard_games ORDER BY updated_at DESC`)
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

func (s *PostgresStore) LastModified(ctx context.Context, gameID string) (int64, error) {
	var version int64
	err := s.pool.QueryRow(ctx, `SELECT version FROM wizard_games WHERE id = $1`, gameID).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("last modified %s: %w", gameID, err)
	}
	return version, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
