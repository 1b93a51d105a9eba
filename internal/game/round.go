// internal/game/round.go
package game

import (
	"fmt"
	"strings"

	"github.com/cardtable/wizard/internal/models"
)

// AdvanceTrick clears the finished trick and either opens the next one (the
// previous winner leads) or, when the round's tricks are exhausted, applies
// round scoring and moves to round_complete.
func AdvanceTrick(g *models.GameState) Result {
	if g.Phase != models.PhaseTrickComplete {
		return rejected(ReasonWrongPhase)
	}

	g.CurrentTrickCards = nil
	g.LeadSuit = ""
	g.CurrentTrick++

	if g.CurrentTrick > g.CardsThisRound() {
		applyRoundScores(g)
		g.Phase = models.PhaseRoundComplete
		return applied()
	}

	winnerIdx := g.PlayerIndex(g.TrickWinner)
	if winnerIdx < 0 {
		panic("game: trick winner is not seated")
	}
	g.CurrentPlayerIndex = winnerIdx
	g.Phase = models.PhasePlaying
	g.TrickWinner = ""
	g.Message = fmt.Sprintf("Trick %d. %s leads.", g.CurrentTrick, g.CurrentPlayer().Name)
	return applied()
}

// applyRoundScores adds each seat's round result to its cumulative score:
// an exact bid earns 20 plus 10 per trick, a missed bid costs 10 per trick
// of difference.
func applyRoundScores(g *models.GameState) {
	var parts []string
	for _, p := range g.Players {
		bid := 0
		if p.HasBid() {
			bid = *p.Bid
		}
		if bid == p.TricksWon {
			p.Score += 20 + 10*p.TricksWon
			parts = append(parts, fmt.Sprintf("%s bid %d, won %d (made)", p.Name, bid, p.TricksWon))
		} else {
			diff := bid - p.TricksWon
			if diff < 0 {
				diff = -diff
			}
			p.Score -= 10 * diff
			parts = append(parts, fmt.Sprintf("%s bid %d, won %d (missed)", p.Name, bid, p.TricksWon))
		}
	}
	g.Message = "Round complete! " + strings.Join(parts, " | ")
}

// AdvanceRound rotates the dealer and deals the next round, or ends the game
// once every card has been dealt. The winner is the first seat holding the
// maximum cumulative score.
func AdvanceRound(g *models.GameState) Result {
	if g.Phase != models.PhaseRoundComplete {
		return rejected(ReasonWrongPhase)
	}

	g.CurrentRound++
	g.DealerIndex = (g.DealerIndex + 1) % len(g.Players)

	if g.CurrentRound > g.MaxRounds() {
		g.Phase = models.PhaseGameOver
		winner := g.Players[0]
		for _, p := range g.Players[1:] {
			if p.Score > winner.Score {
				winner = p
			}
		}
		g.Message = fmt.Sprintf("Game Over! %s wins with %d points!", winner.Name, winner.Score)
		return applied()
	}

	Deal(g)
	return applied()
}
