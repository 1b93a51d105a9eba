// internal/server/view.go
package server

import (
	"github.com/cardtable/wizard/internal/game"
	"github.com/cardtable/wizard/internal/models"
)

// PlayerView is one seat from the perspective of a requesting player: other
// players' hands are reduced to a count.
type PlayerView struct {
	PlayerID      string `json:"player_id"`
	Name          string `json:"name"`
	HandSize      int    `json:"hand_size"`
	Bid           *int   `json:"bid"`
	TricksWon     int    `json:"tricks_won"`
	Score         int    `json:"score"`
	Connected     bool   `json:"is_connected"`
	IsCurrentTurn bool   `json:"is_current_turn"`
	IsDealer      bool   `json:"is_dealer"`
	IsHost        bool   `json:"is_host"`
}

// GameView is the per-player snapshot served to clients. The requesting
// player's own hand is revealed along with the plays currently legal for it;
// everything table-public (trick, bids, scores, chat) is included as is. The
// deck is never exposed.
type GameView struct {
	GameID          string               `json:"game_id"`
	Phase           models.Phase         `json:"phase"`
	CurrentRound    int                  `json:"current_round"`
	MaxRounds       int                  `json:"max_rounds"`
	CurrentTrick    int                  `json:"current_trick"`
	CardsThisRound  int                  `json:"cards_this_round"`
	TrumpCard       *models.Card         `json:"trump_card,omitempty"`
	Trump           models.Trump         `json:"trump"`
	LeadSuit        models.Suit          `json:"lead_suit,omitempty"`
	CurrentPlayerID string               `json:"current_player_id,omitempty"`
	DealerID        string               `json:"dealer_id,omitempty"`
	Players         []PlayerView         `json:"players"`
	TrickCards      []models.PlayedCard  `json:"current_trick_cards"`
	TrickWinner     string               `json:"trick_winner,omitempty"`
	Message         string               `json:"message"`
	ChatMessages    []models.ChatMessage `json:"chat_messages"`
	Version         int64                `json:"version"`

	// Fields for the requesting player only.
	Hand         []models.Card `json:"hand,omitempty"`
	LegalPlays   []models.Card `json:"legal_plays,omitempty"`
	ForbiddenBid *int          `json:"forbidden_bid,omitempty"`
}

// ViewFor builds the snapshot one player is allowed to see.
func ViewFor(g *models.GameState, playerID string) GameView {
	view := GameView{
		GameID:         g.GameID,
		Phase:          g.Phase,
		CurrentRound:   g.CurrentRound,
		MaxRounds:      g.MaxRounds(),
		CurrentTrick:   g.CurrentTrick,
		CardsThisRound: g.CardsThisRound(),
		TrumpCard:      g.TrumpCard,
		Trump:          g.Trump,
		LeadSuit:       g.LeadSuit,
		TrickCards:     g.CurrentTrickCards,
		TrickWinner:    g.TrickWinner,
		Message:        g.Message,
		ChatMessages:   g.ChatMessages,
		Version:        g.Version,
	}

	if len(g.Players) > 0 && g.DealerIndex < len(g.Players) {
		view.DealerID = g.Players[g.DealerIndex].ID
	}
	if current := g.CurrentPlayer(); current != nil && g.Phase != models.PhaseWaitingForPlayers {
		view.CurrentPlayerID = current.ID
	}

	for i, p := range g.Players {
		view.Players = append(view.Players, PlayerView{
			PlayerID:      p.ID,
			Name:          p.Name,
			HandSize:      len(p.Hand),
			Bid:           p.Bid,
			TricksWon:     p.TricksWon,
			Score:         p.Score,
			Connected:     p.Connected,
			IsCurrentTurn: i == g.CurrentPlayerIndex && g.Phase != models.PhaseWaitingForPlayers,
			IsDealer:      i == g.DealerIndex,
			IsHost:        p.ID == g.HostID,
		})
	}

	me := g.GetPlayer(playerID)
	if me == nil {
		return view
	}
	view.Hand = me.Hand

	if g.Phase == models.PhasePlaying && view.CurrentPlayerID == playerID {
		view.LegalPlays = game.LegalPlays(me.Hand, g.LeadSuit)
	}
	if g.Phase == models.PhaseBidding && view.CurrentPlayerID == playerID {
		if forbidden, ok := game.ForbiddenBid(g); ok {
			f := forbidden
			view.ForbiddenBid = &f
		}
	}
	return view
}
