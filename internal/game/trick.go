// internal/game/trick.go
package game

import (
	"fmt"

	"github.com/cardtable/wizard/internal/models"
)

// LegalPlays returns the subset of hand that may be played against the given
// lead suit. With no lead established, everything is legal. Otherwise cards
// of the lead suit plus wildcards are legal; a hand holding no card of the
// lead suit is entirely legal.
func LegalPlays(hand []models.Card, lead models.Suit) []models.Card {
	if lead == "" {
		return hand
	}

	var matching, wildcards []models.Card
	for _, c := range hand {
		switch {
		case c.Suit.IsWildcard():
			wildcards = append(wildcards, c)
		case c.Suit == lead:
			matching = append(matching, c)
		}
	}
	if len(matching) == 0 {
		return hand
	}
	return append(matching, wildcards...)
}

// PlayCard moves a card from the actor's hand into the current trick. The
// first ordinary card of a trick establishes the lead suit (wildcard leads
// leave it open for a later ordinary card). When the trick fills, the winner
// is resolved and credited and the phase moves to trick_complete.
func PlayCard(g *models.GameState, playerID string, card models.Card) Result {
	if g.Phase != models.PhasePlaying {
		return rejected(ReasonWrongPhase)
	}
	player := g.GetPlayer(playerID)
	if player == nil {
		return rejected(ReasonUnknownPlayer)
	}
	if current := g.CurrentPlayer(); current == nil || current.ID != playerID {
		return rejected(ReasonNotYourTurn)
	}
	if !player.HoldsCard(card) {
		return rejected(ReasonCardNotHeld)
	}

	removeCard(player, card)

	if !g.HasLead() && card.Suit.IsOrdinary() {
		g.LeadSuit = card.Suit
	}

	g.CurrentTrickCards = append(g.CurrentTrickCards, models.PlayedCard{PlayerID: playerID, Card: card})

	if len(g.CurrentTrickCards) == len(g.Players) {
		winnerID := determineTrickWinner(g)
		winner := g.GetPlayer(winnerID)
		winner.TricksWon++
		g.TrickWinner = winnerID
		g.Phase = models.PhaseTrickComplete
		g.Message = fmt.Sprintf("%s wins the trick!", winner.Name)
	} else {
		g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % len(g.Players)
		g.Message = fmt.Sprintf("%s's turn to play.", g.CurrentPlayer().Name)
	}
	return applied()
}

func removeCard(p *models.Player, card models.Card) {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return
		}
	}
}

// determineTrickWinner resolves the completed trick in play order:
//
//  1. The first Wizard played wins outright.
//  2. If every card is a Jester, the first player to act wins.
//  3. Otherwise scan for the best non-Jester: trump beats non-trump, higher
//     trump beats lower trump, following the lead suit beats neither, and
//     among two lead-followers the higher rank wins. A card that is neither
//     trump nor lead never displaces the current best.
func determineTrickWinner(g *models.GameState) string {
	if len(g.CurrentTrickCards) == 0 {
		panic("game: determine winner of empty trick")
	}

	for _, played := range g.CurrentTrickCards {
		if played.Card.Suit == models.Wizard {
			return played.PlayerID
		}
	}

	allJesters := true
	for _, played := range g.CurrentTrickCards {
		if played.Card.Suit != models.Jester {
			allJesters = false
			break
		}
	}
	if allJesters {
		return g.CurrentTrickCards[0].PlayerID
	}

	lead := g.LeadSuit
	trump, hasTrump := g.Trump.Active()

	var best *models.PlayedCard
	for i := range g.CurrentTrickCards {
		played := &g.CurrentTrickCards[i]
		card := played.Card

		// Jesters never win and never become the comparison baseline.
		if card.Suit == models.Jester {
			continue
		}

		if best == nil {
			best = played
			// All plays before this one were Jesters: this card sets the lead.
			if lead == "" && card.Suit.IsOrdinary() {
				lead = card.Suit
			}
			continue
		}

		cardTrump := hasTrump && card.Suit == trump
		bestTrump := hasTrump && best.Card.Suit == trump
		cardLead := lead != "" && card.Suit == lead
		bestLead := lead != "" && best.Card.Suit == lead

		switch {
		case cardTrump && !bestTrump:
			best = played
		case bestTrump && !cardTrump:
			// current best stands
		case cardTrump && bestTrump:
			if card.Rank > best.Card.Rank {
				best = played
			}
		case cardLead && bestLead:
			if card.Rank > best.Card.Rank {
				best = played
			}
		case cardLead && !bestLead:
			best = played
		}
	}

	if best == nil {
		panic("game: trick resolution found no winner")
	}
	return best.PlayerID
}
