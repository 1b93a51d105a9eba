// internal/models/serialize_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState(phase Phase, trump Trump) *GameState {
	bid := 2
	return &GameState{
		GameID: "g1",
		HostID: "alice",
		Players: []*Player{
			{
				ID:   "alice",
				Name: "Alice",
				Hand: []Card{
					{Suit: Wizard, Rank: WizardRank},
					{Suit: Spades, Rank: 11},
				},
				Bid:       &bid,
				TricksWon: 1,
				Score:     -30,
				Ready:     true,
				Connected: true,
			},
			{
				ID:        "bob",
				Name:      "Bob",
				Hand:      []Card{{Suit: Jester, Rank: JesterRank}},
				Connected: false,
			},
		},
		Phase:              phase,
		CurrentRound:       4,
		CurrentTrick:       2,
		CurrentPlayerIndex: 1,
		DealerIndex:        0,
		TrumpCard:          &Card{Suit: Hearts, Rank: 9},
		Trump:              trump,
		LeadSuit:           Clubs,
		CurrentTrickCards: []PlayedCard{
			{PlayerID: "alice", Card: Card{Suit: Clubs, Rank: 7}},
		},
		TrickWinner:  "alice",
		Deck:         []Card{{Suit: Diamonds, Rank: 1}, {Suit: Diamonds, Rank: 2}},
		Message:      "Bob's turn to play.",
		ChatMessages: []ChatMessage{{PlayerName: "Alice", Message: "gl", Timestamp: "12:00"}},
		Version:      17,
		LastUpdated:  "2024-05-01T09:30:00Z",
	}
}

func TestGameStateRoundTripAllPhases(t *testing.T) {
	phases := []Phase{
		PhaseWaitingForPlayers, PhaseChoosingTrump, PhaseBidding,
		PhasePlaying, PhaseTrickComplete, PhaseRoundComplete, PhaseGameOver,
	}
	trumps := []Trump{UndeterminedTrump(), NoTrump(), TrumpOf(Hearts)}

	for _, phase := range phases {
		for _, trump := range trumps {
			original := sampleState(phase, trump)
			data, err := json.Marshal(original)
			require.NoError(t, err)

			var decoded GameState
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, original, &decoded, "phase %s trump %s", phase, trump.Kind)
		}
	}
}

func TestWireTagsAreStable(t *testing.T) {
	data, err := json.Marshal(sampleState(PhasePlaying, TrumpOf(Hearts)))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "playing", doc["phase"])
	assert.Equal(t, "♣", doc["lead_suit"])
	assert.Equal(t, float64(17), doc["version"])

	trump, ok := doc["trump"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "suit", trump["kind"])
	assert.Equal(t, "♥", trump["suit"])

	players, ok := doc["players"].([]interface{})
	require.True(t, ok)
	alice := players[0].(map[string]interface{})
	assert.Equal(t, "alice", alice["player_id"])
	hand := alice["hand"].([]interface{})
	wizard := hand[0].(map[string]interface{})
	assert.Equal(t, "🧙", wizard["suit"])
	assert.Equal(t, float64(WizardRank), wizard["value"])
}

func TestCardDisplay(t *testing.T) {
	assert.Equal(t, "🧙 Wizard", Card{Suit: Wizard, Rank: WizardRank}.Display())
	assert.Equal(t, "🃏 Jester", Card{Suit: Jester, Rank: JesterRank}.Display())
	assert.Equal(t, "A♥", Card{Suit: Hearts, Rank: 1}.Display())
	assert.Equal(t, "10♦", Card{Suit: Diamonds, Rank: 10}.Display())
	assert.Equal(t, "K♠", Card{Suit: Spades, Rank: 13}.Display())
	assert.Equal(t, "Q♣", Card{Suit: Clubs, Rank: 12}.Display())
}

func TestTrumpVariants(t *testing.T) {
	_, ok := UndeterminedTrump().Active()
	assert.False(t, ok)
	_, ok = NoTrump().Active()
	assert.False(t, ok)

	suit, ok := TrumpOf(Spades).Active()
	assert.True(t, ok)
	assert.Equal(t, Spades, suit)
}
