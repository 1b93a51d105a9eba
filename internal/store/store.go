// internal/store/store.go
package store

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/cardtable/wizard/internal/config"
	"github.com/cardtable/wizard/internal/models"
)

// ErrNotFound is returned when a game id has no stored snapshot.
var ErrNotFound = errors.New("store: game not found")

// Store persists GameState snapshots keyed by game id. Implementations must
// round-trip every field losslessly; they are not responsible for
// serializing concurrent read-modify-write cycles (the server layer holds a
// per-game critical section around each transition).
type Store interface {
	// Save writes the snapshot, replacing any previous one for the same id.
	Save(ctx context.Context, g *models.GameState) error
	// Load returns the snapshot for the id, or ErrNotFound.
	Load(ctx context.Context, gameID string) (*models.GameState, error)
	// Delete removes a game. Deleting an absent id is not an error.
	Delete(ctx context.Context, gameID string) error
	// ListIDs returns the ids of all stored games.
	ListIDs(ctx context.Context) ([]string, error)
	// LastModified returns the stored snapshot's version counter, the marker
	// polling clients compare against, or ErrNotFound.
	LastModified(ctx context.Context, gameID string) (int64, error)
	// Close releases the backend's resources.
	Close() error
}

// Open selects a backend per cfg.StoreMode. When a networked backend cannot
// be reached, it falls back to the local sqlite file so the service still
// comes up, mirroring the store factory's degrade-to-local behavior.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (Store, error) {
	switch cfg.StoreMode {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StorePostgres:
		s, err := NewPostgresStore(ctx, cfg.PostgresURL())
		if err == nil {
			return s, nil
		}
		logger.WithError(err).Warn("postgres store unavailable, falling back to sqlite")
	case config.StoreRedis:
		s, err := NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err == nil {
			return s, nil
		}
		logger.WithError(err).Warn("redis store unavailable, falling back to sqlite")
	case config.StoreSQLite:
		// fallthrough to sqlite below
	default:
		logger.WithField("mode", cfg.StoreMode).Warn("unknown store mode, using sqlite")
	}
	return NewSQLiteStore(cfg.SQLitePath)
}
