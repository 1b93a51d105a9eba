// internal/store/memory.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cardtable/wizard/internal/models"
)

// MemoryStore keeps snapshots in process memory. Snapshots are held in their
// serialized form so callers never share state through the store. Used for
// tests and single-process development.
type MemoryStore struct {
	mu       sync.Mutex
	games    map[string][]byte
	versions map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:    make(map[string][]byte),
		versions: make(map[string]int64),
	}
}

func (s *MemoryStore) Save(ctx context.Context, g *models.GameState) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", g.GameID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.GameID] = data
	s.versions[g.GameID] = g.Version
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, gameID string) (*models.GameState, error) {
	s.mu.Lock()
	data, ok := s.games[gameID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	var g models.GameState
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("unmarshal game %s: %w", gameID, err)
	}
	return &g, nil
}

func (s *MemoryStore) Delete(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameID)
	delete(s.versions, gameID)
	return nil
}

func (s *MemoryStore) ListIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemoryStore) LastModified(ctx context.Context, gameID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.versions[gameID]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Close() error { return nil }
