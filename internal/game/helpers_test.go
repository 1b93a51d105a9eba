// internal/game/helpers_test.go
package game

import (
	"fmt"
	"testing"

	"github.com/cardtable/wizard/internal/models"
)

// seatedGame builds a waiting game with n seated players p1..pn, p1 hosting.
func seatedGame(t *testing.T, n int) *models.GameState {
	t.Helper()
	g := NewGame("testgame", "p1", "Player1")
	for i := 2; i <= n; i++ {
		res := Join(g, fmt.Sprintf("p%d", i), fmt.Sprintf("Player%d", i))
		if !res.Applied {
			t.Fatalf("join p%d rejected: %s", i, res.Reason)
		}
	}
	return g
}

// biddingGame builds a game mid-bidding: dealer seat 0, first bidder is seat
// 1, round (= hand size) as given. Hands are irrelevant for bidding tests and
// left empty.
func biddingGame(t *testing.T, n, round int) *models.GameState {
	t.Helper()
	g := seatedGame(t, n)
	g.Phase = models.PhaseBidding
	g.CurrentRound = round
	g.DealerIndex = 0
	g.CurrentPlayerIndex = 1 % n
	return g
}

// playingGame builds a game mid-play: hands as given per seat (in seating
// order), trump as given, seat 0 dealer, seat leadIdx to act.
func playingGame(t *testing.T, hands [][]models.Card, trump models.Trump, leadIdx int) *models.GameState {
	t.Helper()
	g := seatedGame(t, len(hands))
	g.Phase = models.PhasePlaying
	g.CurrentRound = len(hands[0])
	g.Trump = trump
	g.DealerIndex = 0
	g.CurrentPlayerIndex = leadIdx
	for i, p := range g.Players {
		p.Hand = append([]models.Card(nil), hands[i]...)
		bid := 0
		p.Bid = &bid
	}
	return g
}

func card(suit models.Suit, rank int) models.Card {
	return models.Card{Suit: suit, Rank: rank}
}

func wizardCard() models.Card { return card(models.Wizard, models.WizardRank) }
func jesterCard() models.Card { return card(models.Jester, models.JesterRank) }
