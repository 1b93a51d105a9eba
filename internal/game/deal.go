// internal/game/deal.go
package game

import (
	"fmt"

	"github.com/cardtable/wizard/internal/models"
)

// Deal starts the current round: shuffles a fresh deck, replaces every hand,
// flips the trump card and opens bidding (or trump choosing when a Wizard was
// flipped). The first bidder is the seat after the dealer.
func Deal(g *models.GameState) {
	if len(g.Players) == 0 {
		panic("game: deal with zero seated players")
	}

	g.Deck = Shuffle(NewDeck())

	for _, p := range g.Players {
		p.Hand = nil
		p.Bid = nil
		p.TricksWon = 0
	}

	// Round-robin, one card per player per pass.
	for i := 0; i < g.CardsThisRound(); i++ {
		for _, p := range g.Players {
			if len(g.Deck) == 0 {
				break
			}
			p.Hand = append(p.Hand, g.Deck[len(g.Deck)-1])
			g.Deck = g.Deck[:len(g.Deck)-1]
		}
	}

	for _, p := range g.Players {
		SortHand(p.Hand)
	}

	flipTrump(g)

	g.CurrentPlayerIndex = (g.DealerIndex + 1) % len(g.Players)
	g.CurrentTrick = 1
	g.CurrentTrickCards = nil
	g.LeadSuit = ""
	g.TrickWinner = ""

	if g.Phase == models.PhaseBidding {
		g.Message = fmt.Sprintf("Round %d. %s's turn to bid.", g.CurrentRound, g.CurrentPlayer().Name)
	}
}

// flipTrump turns over the next deck card to fix the trump situation for the
// round. On the last round the deck is fully dealt out and there is no card
// left to flip.
func flipTrump(g *models.GameState) {
	if len(g.Deck) == 0 {
		g.TrumpCard = nil
		g.Trump = models.NoTrump()
		g.Phase = models.PhaseBidding
		return
	}

	flipped := g.Deck[len(g.Deck)-1]
	g.Deck = g.Deck[:len(g.Deck)-1]
	g.TrumpCard = &flipped

	switch flipped.Suit {
	case models.Wizard:
		g.Trump = models.UndeterminedTrump()
		g.Phase = models.PhaseChoosingTrump
		g.Message = fmt.Sprintf("Wizard flipped! %s must choose the trump suit.", g.Players[g.DealerIndex].Name)
	case models.Jester:
		g.Trump = models.NoTrump()
		g.Phase = models.PhaseBidding
	default:
		g.Trump = models.TrumpOf(flipped.Suit)
		g.Phase = models.PhaseBidding
	}
}

// ChooseTrump records the dealer's trump choice after a Wizard was flipped
// and opens bidding. Anyone but the dealer, any non-ordinary suit, or a call
// outside the choosing phase is rejected without mutation.
func ChooseTrump(g *models.GameState, playerID string, suit models.Suit) Result {
	if g.Phase != models.PhaseChoosingTrump {
		return rejected(ReasonWrongPhase)
	}
	if g.Players[g.DealerIndex].ID != playerID {
		return rejected(ReasonNotDealer)
	}
	if !suit.IsOrdinary() {
		return rejected(ReasonInvalidSuit)
	}

	g.Trump = models.TrumpOf(suit)
	g.Phase = models.PhaseBidding
	g.Message = fmt.Sprintf("%s chose %s as trump! %s's turn to bid.",
		g.Players[g.DealerIndex].Name, suit, g.CurrentPlayer().Name)
	return applied()
}
