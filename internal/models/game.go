// internal/models/game.go
package models

// Phase is the current lifecycle stage of a game. The string values are the
// stable wire tags.
type Phase string

const (
	PhaseWaitingForPlayers Phase = "waiting_for_players"
	PhaseChoosingTrump     Phase = "choosing_trump" // dealer picks trump after a Wizard was flipped
	PhaseBidding           Phase = "bidding"
	PhasePlaying           Phase = "playing"
	PhaseTrickComplete     Phase = "trick_complete"
	PhaseRoundComplete     Phase = "round_complete"
	PhaseGameOver          Phase = "game_over"
)

// TrumpKind distinguishes the three trump situations that a round can be in.
type TrumpKind string

const (
	// TrumpUndetermined means a Wizard was flipped and the dealer has not
	// chosen a suit yet.
	TrumpUndetermined TrumpKind = "undetermined"
	// TrumpNone means there is no trump this round (Jester flipped, or the
	// deck was fully dealt out).
	TrumpNone TrumpKind = "none"
	// TrumpSuited means an ordinary suit is trump.
	TrumpSuited TrumpKind = "suit"
)

// Trump makes the trump situation explicit instead of overloading a nullable
// suit whose meaning depends on the phase.
type Trump struct {
	Kind TrumpKind `json:"kind"`
	Suit Suit      `json:"suit,omitempty"`
}

// NoTrump is the trump value for a round without a trump suit.
func NoTrump() Trump { return Trump{Kind: TrumpNone} }

// UndeterminedTrump is the trump value while the dealer's choice is pending.
func UndeterminedTrump() Trump { return Trump{Kind: TrumpUndetermined} }

// TrumpOf returns the trump value for an ordinary suit.
func TrumpOf(s Suit) Trump { return Trump{Kind: TrumpSuited, Suit: s} }

// Active returns the trump suit and whether one is in effect.
func (t Trump) Active() (Suit, bool) {
	if t.Kind == TrumpSuited {
		return t.Suit, true
	}
	return "", false
}

// PlayedCard is one entry in the current trick. Slice order is play order,
// which also decides first-mover precedence during trick resolution.
type PlayedCard struct {
	PlayerID string `json:"player_id"`
	Card     Card   `json:"card"`
}

// GameState is the aggregate root for one game. It is created once, mutated
// in place by the engine's transitions, and persisted as a snapshot between
// actions.
type GameState struct {
	GameID             string        `json:"game_id"`
	HostID             string        `json:"host_id"`
	Players            []*Player     `json:"players"` // seating order, fixed once the game starts
	Phase              Phase         `json:"phase"`
	CurrentRound       int           `json:"current_round"` // 1-based, doubles as hand size
	CurrentTrick       int           `json:"current_trick"` // 1-based
	CurrentPlayerIndex int           `json:"current_player_index"`
	DealerIndex        int           `json:"dealer_index"`
	TrumpCard          *Card         `json:"trump_card"` // the flipped card, nil when the deck ran out
	Trump              Trump         `json:"trump"`
	LeadSuit           Suit          `json:"lead_suit,omitempty"` // empty while only wildcards have been played
	CurrentTrickCards  []PlayedCard  `json:"current_trick_cards"`
	TrickWinner        string        `json:"trick_winner,omitempty"`
	Deck               []Card        `json:"deck"` // remaining undealt cards
	Message            string        `json:"message"`
	ChatMessages       []ChatMessage `json:"chat_messages"`

	// Version increments on every committed transition and is the marker
	// polling clients compare against.
	Version     int64  `json:"version"`
	LastUpdated string `json:"last_updated"` // RFC3339, informational
}

// DeckSize is the fixed number of cards in a Wizard deck.
const DeckSize = 60

// MaxRounds is how many rounds this game runs: hand size grows by one each
// round until the deck is fully dealt.
func (g *GameState) MaxRounds() int {
	if len(g.Players) == 0 {
		return 0
	}
	return DeckSize / len(g.Players)
}

// CardsThisRound is the hand size dealt this round.
func (g *GameState) CardsThisRound() int {
	return g.CurrentRound
}

// CurrentPlayer returns the seat whose turn it is, or nil before seating is
// established.
func (g *GameState) CurrentPlayer() *Player {
	if len(g.Players) == 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentPlayerIndex]
}

// GetPlayer returns the seat with the given id, or nil.
func (g *GameState) GetPlayer(playerID string) *Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// PlayerIndex returns the seat index for the given id, or -1.
func (g *GameState) PlayerIndex(playerID string) int {
	for i, p := range g.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// HasLead reports whether a lead suit has been established for the current
// trick.
func (g *GameState) HasLead() bool {
	return g.LeadSuit != ""
}
