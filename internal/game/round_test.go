// internal/game/round_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/wizard/internal/models"
)

// trickCompleteGame builds a game whose final trick of the round just
// resolved, with per-seat (bid, tricks won) results.
func trickCompleteGame(t *testing.T, results [][2]int) *models.GameState {
	t.Helper()
	hands := make([][]models.Card, len(results))
	g := playingGame(t, hands, models.NoTrump(), 0)
	g.CurrentRound = 0
	for i, p := range g.Players {
		bid := results[i][0]
		p.Bid = &bid
		p.TricksWon = results[i][1]
		g.CurrentRound += results[i][1]
	}
	g.CurrentTrick = g.CurrentRound
	g.Phase = models.PhaseTrickComplete
	g.TrickWinner = g.Players[0].ID
	return g
}

func TestRoundScoring(t *testing.T) {
	// Bid 3 won 3 -> +50; bid 2 won 0 -> -20; bid 0 won 0 -> +20.
	g := trickCompleteGame(t, [][2]int{{3, 3}, {2, 0}, {0, 0}})
	require.True(t, AdvanceTrick(g).Applied)

	assert.Equal(t, models.PhaseRoundComplete, g.Phase)
	assert.Equal(t, 50, g.Players[0].Score)
	assert.Equal(t, -20, g.Players[1].Score)
	assert.Equal(t, 20, g.Players[2].Score)
}

func TestScoringIsAdditiveAcrossRounds(t *testing.T) {
	g := trickCompleteGame(t, [][2]int{{1, 1}, {0, 0}})
	g.Players[0].Score = -30
	g.Players[1].Score = 70
	require.True(t, AdvanceTrick(g).Applied)

	assert.Equal(t, 0, g.Players[0].Score)  // -30 + 30
	assert.Equal(t, 90, g.Players[1].Score) // 70 + 20
}

func TestAdvanceTrickWinnerLeadsNext(t *testing.T) {
	g := playingGame(t, [][]models.Card{
		{card(models.Hearts, 4)},
		{card(models.Hearts, 9)},
	}, models.NoTrump(), 0)
	g.CurrentRound = 3
	g.CurrentTrick = 1
	g.Phase = models.PhaseTrickComplete
	g.TrickWinner = "p2"
	g.CurrentTrickCards = []models.PlayedCard{
		{PlayerID: "p1", Card: card(models.Clubs, 2)},
		{PlayerID: "p2", Card: card(models.Clubs, 5)},
	}
	g.LeadSuit = models.Clubs

	require.True(t, AdvanceTrick(g).Applied)
	assert.Equal(t, models.PhasePlaying, g.Phase)
	assert.Equal(t, 2, g.CurrentTrick)
	assert.Equal(t, 1, g.CurrentPlayerIndex, "previous winner leads")
	assert.Empty(t, g.CurrentTrickCards)
	assert.False(t, g.HasLead())
	assert.Empty(t, g.TrickWinner)
}

func TestAdvanceTrickWrongPhase(t *testing.T) {
	g := seatedGame(t, 2)
	assert.Equal(t, rejected(ReasonWrongPhase), AdvanceTrick(g))
}

func TestTricksWonSumMatchesCardsDealt(t *testing.T) {
	// Play out a full 2-card round with 2 players and check the invariant:
	// the round's tricks exactly cover the cards dealt.
	g := playingGame(t, [][]models.Card{
		{card(models.Hearts, 4), card(models.Clubs, 2)},
		{card(models.Hearts, 9), card(models.Spades, 11)},
	}, models.NoTrump(), 0)
	g.CurrentRound = 2

	require.True(t, PlayCard(g, "p1", card(models.Hearts, 4)).Applied)
	require.True(t, PlayCard(g, "p2", card(models.Hearts, 9)).Applied)
	require.True(t, AdvanceTrick(g).Applied)
	require.Equal(t, models.PhasePlaying, g.Phase)

	leader := g.CurrentPlayer().ID
	require.Equal(t, "p2", leader)
	require.True(t, PlayCard(g, "p2", card(models.Spades, 11)).Applied)
	require.True(t, PlayCard(g, "p1", card(models.Clubs, 2)).Applied)
	require.True(t, AdvanceTrick(g).Applied)

	assert.Equal(t, models.PhaseRoundComplete, g.Phase)
	assert.Equal(t, 2, g.Players[0].TricksWon+g.Players[1].TricksWon)
}

func TestAdvanceRoundRotatesDealerAndDeals(t *testing.T) {
	g := seatedGame(t, 4)
	g.Phase = models.PhaseRoundComplete
	g.CurrentRound = 3
	g.DealerIndex = 2

	require.True(t, AdvanceRound(g).Applied)
	assert.Equal(t, 4, g.CurrentRound)
	assert.Equal(t, 3, g.DealerIndex)
	for _, p := range g.Players {
		assert.Len(t, p.Hand, 4)
	}
	assert.Contains(t, []models.Phase{models.PhaseBidding, models.PhaseChoosingTrump}, g.Phase)
}

func TestGameOverAfterFinalRound(t *testing.T) {
	g := seatedGame(t, 4)
	require.Equal(t, 15, g.MaxRounds())

	g.Phase = models.PhaseRoundComplete
	g.CurrentRound = 15
	g.Players[0].Score = 120
	g.Players[1].Score = 180
	g.Players[2].Score = 180 // tie: first maximum wins
	g.Players[3].Score = -40

	require.True(t, AdvanceRound(g).Applied)
	assert.Equal(t, models.PhaseGameOver, g.Phase)
	assert.Contains(t, g.Message, "Player2 wins with 180 points")
	// No re-deal happened.
	for _, p := range g.Players {
		assert.Empty(t, p.Hand)
	}
}
