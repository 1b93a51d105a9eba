// internal/models/player.go
package models

// Player is one seat in a game. Seats are appended on join and never removed;
// leaving only clears Connected so the seat can be reclaimed by a rejoin.
type Player struct {
	ID        string `json:"player_id"`
	Name      string `json:"name"`
	Hand      []Card `json:"hand"`
	Bid       *int   `json:"bid"`
	TricksWon int    `json:"tricks_won"`
	Score     int    `json:"score"`
	Ready     bool   `json:"is_ready"`
	Connected bool   `json:"is_connected"`
}

// HasBid reports whether the player has placed a bid this round.
func (p *Player) HasBid() bool {
	return p.Bid != nil
}

// HoldsCard reports whether the player's hand contains the given card.
func (p *Player) HoldsCard(c Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}
