// internal/game/membership.go
package game

import (
	"fmt"
	"strings"

	"github.com/cardtable/wizard/internal/models"
)

// Seat limits for a game. The deck bounds the useful player count: six
// players still get ten rounds.
const (
	MinPlayers = 2
	MaxPlayers = 6
)

// NewGame creates a fresh aggregate with the host in the first seat, waiting
// for more players.
func NewGame(gameID, hostID, hostName string) *models.GameState {
	g := &models.GameState{
		GameID:       gameID,
		HostID:       hostID,
		Phase:        models.PhaseWaitingForPlayers,
		CurrentRound: 1,
		CurrentTrick: 1,
		Message:      fmt.Sprintf("Game created! Share code: %s", gameID),
	}
	g.Players = append(g.Players, &models.Player{
		ID:        hostID,
		Name:      hostName,
		Ready:     true,
		Connected: true,
	})
	return g
}

// Join seats a new player at the end of the seating order. Joins are only
// possible before the game starts, up to MaxPlayers, and an id can hold at
// most one seat.
func Join(g *models.GameState, playerID, name string) Result {
	if g.Phase != models.PhaseWaitingForPlayers {
		return rejected(ReasonWrongPhase)
	}
	if len(g.Players) >= MaxPlayers {
		return rejected(ReasonGameFull)
	}
	if g.GetPlayer(playerID) != nil {
		return rejected(ReasonAlreadySeated)
	}

	g.Players = append(g.Players, &models.Player{
		ID:        playerID,
		Name:      name,
		Connected: true,
	})
	g.Message = fmt.Sprintf("%s joined the game! (%d players)", name, len(g.Players))
	return applied()
}

// Rejoin reattaches a player to an existing seat. A seat matched by id is an
// idempotent reconnect; otherwise a case-insensitive name match reassigns
// that seat to the new id, so a player can resume from a different session.
// When the reassigned seat held the host role, the role follows the new id.
func Rejoin(g *models.GameState, playerID, name string) Result {
	if existing := g.GetPlayer(playerID); existing != nil {
		existing.Connected = true
		existing.Name = name
		g.Message = fmt.Sprintf("%s has reconnected!", name)
		return applied()
	}

	for _, p := range g.Players {
		if strings.EqualFold(p.Name, name) {
			oldID := p.ID
			p.ID = playerID
			p.Connected = true
			if g.HostID == oldID {
				g.HostID = playerID
			}
			g.Message = fmt.Sprintf("%s has reconnected!", name)
			return applied()
		}
	}

	return rejected(ReasonNoMatchingSeat)
}

// Leave marks a seat disconnected. The seat and its hand stay in place so a
// later rejoin can resume it. A departing host hands the role to the first
// remaining connected seat, or leaves it unset when nobody is connected.
func Leave(g *models.GameState, playerID string) Result {
	player := g.GetPlayer(playerID)
	if player == nil {
		return rejected(ReasonUnknownPlayer)
	}

	player.Connected = false
	g.Message = fmt.Sprintf("%s has left the game!", player.Name)

	if g.HostID == playerID {
		g.HostID = ""
		for _, p := range g.Players {
			if p.Connected {
				g.HostID = p.ID
				g.Message = fmt.Sprintf("%s has left! %s is now the host!", player.Name, p.Name)
				break
			}
		}
	}
	return applied()
}

// Start begins the game: host only, at least MinPlayers seated. Seating
// order is fixed from here on and the first round is dealt.
func Start(g *models.GameState, playerID string) Result {
	if g.Phase != models.PhaseWaitingForPlayers {
		return rejected(ReasonWrongPhase)
	}
	if g.HostID != playerID {
		return rejected(ReasonNotHost)
	}
	if len(g.Players) < MinPlayers {
		return rejected(ReasonNotEnoughPlayers)
	}

	Deal(g)
	return applied()
}
