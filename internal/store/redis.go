// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardtable/wizard/internal/models"
)

const (
	redisGamePrefix    = "wizard:game:"
	redisVersionPrefix = "wizard:version:"
)

// RedisStore persists each game as a JSON value, with the version counter in
// a sibling key so pollers never deserialize the whole snapshot.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects and pings a Redis client.
func NewRedisStore(ctx context.Context, addr string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Save(ctx context.Context, g *models.GameState) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", g.GameID, err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, redisGamePrefix+g.GameID, data, 0)
	pipe.Set(ctx, redisVersionPrefix+g.GameID, g.Version, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save game %s: %w", g.GameID, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, gameID string) (*models.GameState, error) {
	data, err := s.rdb.Get(ctx, redisGamePrefix+gameID).Bytes()
	if errors.Is(err, redis.Nil) {
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

func (s *RedisStore) Delete(ctx context.Context, gameID string) error {
	if err := s.rdb.Del(ctx, redisGamePrefix+gameID, redisVersionPrefix+gameID).Err(); err != nil {
		return fmt.Errorf("delete game %s: %w", gameID, err)
	}
	return nil
}

func (s *RedisStore) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.rdb.Scan(ctx, 0, redisGamePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), redisGamePrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return ids, nil
}

func (s *RedisStore) LastModified(ctx context.Context, gameID string) (int64, error) {
	version, err := s.rdb.Get(ctx, redisVersionPrefix+gameID).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("last modified %s: %w", gameID, err)
	}
	return version, nil
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
