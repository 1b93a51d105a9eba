// internal/server/server_test.go
package server

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/wizard/internal/game"
	"github.com/cardtable/wizard/internal/models"
	"github.com/cardtable/wizard/internal/store"
)

func testServer(t *testing.T) *GameServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(store.NewMemoryStore(), logger)
}

// startedGame creates a game with n seated players and starts it.
func startedGame(t *testing.T, s *GameServer, n int) (*models.GameState, []string) {
	t.Helper()
	ctx := context.Background()

	g, err := s.CreateGame(ctx, "p1", "Player1")
	require.NoError(t, err)

	ids := []string{"p1"}
	for i := 2; i <= n; i++ {
		id := fmt.Sprintf("p%d", i)
		_, res, err := s.Join(ctx, g.GameID, id, fmt.Sprintf("Player%d", i))
		require.NoError(t, err)
		require.True(t, res.Applied)
		ids = append(ids, id)
	}

	g, res, err := s.Start(ctx, g.GameID, "p1")
	require.NoError(t, err)
	require.True(t, res.Applied)
	return g, ids
}

func TestCreateAndStateRoundTrip(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	g, err := s.CreateGame(ctx, "host", "Alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), g.Version, "creation is the first committed transition")
	assert.NotEmpty(t, g.LastUpdated)

	loaded, err := s.State(ctx, g.GameID)
	require.NoError(t, err)
	assert.Equal(t, g, loaded)

	_, err = s.State(ctx, "nope")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestVersionBumpsOnlyOnCommit(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	g, err := s.CreateGame(ctx, "host", "Alice")
	require.NoError(t, err)
	before := g.Version

	// Applied transition bumps the version.
	g2, res, err := s.Join(ctx, g.GameID, "bob", "Bob")
	require.NoError(t, err)
	require.True(t, res.Applied)
	assert.Equal(t, before+1, g2.Version)

	// Rejected transition leaves the snapshot untouched.
	_, res, err = s.Join(ctx, g.GameID, "bob", "Bob")
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, game.ReasonAlreadySeated, res.Reason)

	version, err := s.store.LastModified(ctx, g.GameID)
	require.NoError(t, err)
	assert.Equal(t, before+1, version)
}

func TestPollDetectsChange(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	g, err := s.CreateGame(ctx, "host", "Alice")
	require.NoError(t, err)

	changed, version, err := s.Poll(ctx, g.GameID, g.Version)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, g.Version, version)

	_, res, err := s.Join(ctx, g.GameID, "bob", "Bob")
	require.NoError(t, err)
	require.True(t, res.Applied)

	changed, version, err = s.Poll(ctx, g.GameID, g.Version)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, g.Version+1, version)

	_, _, err = s.Poll(ctx, "nope", 0)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestDealerBidValidation(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()
	g, _ := startedGame(t, s, 4)

	// Force a known mid-bidding position: round 5, dealer 0, others bid
	// 2, 1, 1 so the dealer's forbidden bid is 1.
	g.Phase = models.PhaseBidding
	g.CurrentRound = 5
	g.DealerIndex = 0
	g.CurrentPlayerIndex = 1
	for _, p := range g.Players {
		p.Bid = nil
	}
	require.NoError(t, s.store.Save(ctx, g))

	for i, bid := range []int{2, 1, 1} {
		_, res, err := s.PlaceBid(ctx, g.GameID, fmt.Sprintf("p%d", i+2), bid)
		require.NoError(t, err)
		require.True(t, res.Applied)
	}

	_, res, err := s.PlaceBid(ctx, g.GameID, "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, game.ReasonForbiddenBid, res.Reason)

	_, res, err = s.PlaceBid(ctx, g.GameID, "p1", 6)
	require.NoError(t, err)
	assert.Equal(t, game.ReasonInvalidBid, res.Reason)

	state, res, err := s.PlaceBid(ctx, g.GameID, "p1", 2)
	require.NoError(t, err)
	require.True(t, res.Applied)
	assert.Equal(t, models.PhasePlaying, state.Phase)
}

func TestFollowSuitEnforcement(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()
	g, _ := startedGame(t, s, 2)

	// Hand-craft a playing position where p2 can follow the club lead.
	g.Phase = models.PhasePlaying
	g.CurrentRound = 2
	g.Trump = models.NoTrump()
	g.DealerIndex = 0
	g.CurrentPlayerIndex = 0
	bid := 1
	g.Players[0].Bid = &bid
	g.Players[1].Bid = &bid
	g.Players[0].Hand = []models.Card{{Suit: models.Clubs, Rank: 9}, {Suit: models.Hearts, Rank: 2}}
	g.Players[1].Hand = []models.Card{{Suit: models.Clubs, Rank: 4}, {Suit: models.Hearts, Rank: 8}}
	g.CurrentTrickCards = nil
	g.LeadSuit = ""
	require.NoError(t, s.store.Save(ctx, g))

	_, res, err := s.PlayCard(ctx, g.GameID, "p1", models.Card{Suit: models.Clubs, Rank: 9})
	require.NoError(t, err)
	require.True(t, res.Applied)

	// p2 holds a club, so sloughing the heart is illegal.
	_, res, err = s.PlayCard(ctx, g.GameID, "p2", models.Card{Suit: models.Hearts, Rank: 8})
	require.NoError(t, err)
	assert.Equal(t, game.ReasonIllegalPlay, res.Reason)

	state, res, err := s.PlayCard(ctx, g.GameID, "p2", models.Card{Suit: models.Clubs, Rank: 4})
	require.NoError(t, err)
	require.True(t, res.Applied)
	assert.Equal(t, models.PhaseTrickComplete, state.Phase)
	assert.Equal(t, "p1", state.TrickWinner)
}

func TestConcurrentJoinsLoseNoUpdates(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	g, err := s.CreateGame(ctx, "host", "Host")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _, err := s.Join(ctx, g.GameID, fmt.Sprintf("j%d", n), fmt.Sprintf("Joiner%d", n))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	state, err := s.State(ctx, g.GameID)
	require.NoError(t, err)
	// Five joiners raced for five remaining seats: all must be seated.
	assert.Len(t, state.Players, 6)
	assert.Equal(t, int64(6), state.Version)
}

func TestDeleteGame(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	g, err := s.CreateGame(ctx, "host", "Alice")
	require.NoError(t, err)
	require.NoError(t, s.DeleteGame(ctx, g.GameID))

	_, err = s.State(ctx, g.GameID)
	assert.ErrorIs(t, err, ErrGameNotFound)
}
