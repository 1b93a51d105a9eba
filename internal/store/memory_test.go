// internal/store/memory_test.go
package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/wizard/internal/game"
)

func TestMemoryStoreContract(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.LastModified(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	g := game.NewGame("g1", "alice", "Alice")
	g.Version = 3
	require.NoError(t, s.Save(ctx, g))

	loaded, err := s.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, g, loaded)

	version, err := s.LastModified(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	ids, err := s.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, ids)

	require.NoError(t, s.Delete(ctx, "g1"))
	_, err = s.Load(ctx, "g1")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Delete(ctx, "g1"), "double delete is not an error")
}

func TestMemoryStoreIsolatesSnapshots(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	g := game.NewGame("g1", "alice", "Alice")
	require.NoError(t, s.Save(ctx, g))

	// Mutating the saved aggregate afterwards must not leak into the store.
	g.Message = "mutated after save"
	loaded, err := s.Load(ctx, "g1")
	require.NoError(t, err)
	assert.NotEqual(t, g.Message, loaded.Message)

	// Two loads never alias each other.
	a, err := s.Load(ctx, "g1")
	require.NoError(t, err)
	b, err := s.Load(ctx, "g1")
	require.NoError(t, err)
	a.Players[0].Score = 999
	assert.Zero(t, b.Players[0].Score)
}
