// internal/game/bidding.go
package game

import (
	"fmt"

	"github.com/cardtable/wizard/internal/models"
)

// ForbiddenBid computes the "screw the dealer" restriction. It applies only
// when the current bidder is the dealer and every other seat has already bid:
// the dealer may not bid the value that would make total bids equal the
// tricks available. The second return is false when no restriction applies.
func ForbiddenBid(g *models.GameState) (int, bool) {
	dealer := g.Players[g.DealerIndex]
	current := g.CurrentPlayer()
	if current == nil || current.ID != dealer.ID {
		return 0, false
	}

	sum := 0
	for _, p := range g.Players {
		if p.ID == dealer.ID {
			continue
		}
		if !p.HasBid() {
			return 0, false
		}
		sum += *p.Bid
	}

	forbidden := g.CardsThisRound() - sum
	if forbidden < 0 || forbidden > g.CardsThisRound() {
		return 0, false
	}
	return forbidden, true
}

// PlaceBid records a bid and advances the turn. When the last seat has bid,
// play opens with the seat after the dealer leading trick 1.
//
// The dealer restriction is deliberately not enforced here; callers must
// check ForbiddenBid before invoking this transition.
func PlaceBid(g *models.GameState, playerID string, bid int) Result {
	if g.Phase != models.PhaseBidding {
		return rejected(ReasonWrongPhase)
	}
	player := g.GetPlayer(playerID)
	if player == nil {
		return rejected(ReasonUnknownPlayer)
	}
	if current := g.CurrentPlayer(); current == nil || current.ID != playerID {
		return rejected(ReasonNotYourTurn)
	}

	b := bid
	player.Bid = &b
	g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % len(g.Players)

	if allBid(g) {
		g.Phase = models.PhasePlaying
		g.CurrentPlayerIndex = (g.DealerIndex + 1) % len(g.Players)
		g.Message = fmt.Sprintf("Bidding complete! %s's turn to lead.", g.CurrentPlayer().Name)
	} else {
		g.Message = fmt.Sprintf("Waiting for %s to bid.", g.CurrentPlayer().Name)
	}
	return applied()
}

func allBid(g *models.GameState) bool {
	for _, p := range g.Players {
		if !p.HasBid() {
			return false
		}
	}
	return true
}
