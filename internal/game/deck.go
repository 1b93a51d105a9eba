// internal/game/deck.go
package game

import (
	"math/rand"
	"sort"
	"time"

	"github.com/cardtable/wizard/internal/models"
)

// NewDeck returns the fixed 60-card Wizard deck in deterministic order:
// 4 Wizards, 4 Jesters, then ranks 1-13 for each ordinary suit.
func NewDeck() []models.Card {
	deck := make([]models.Card, 0, models.DeckSize)
	for i := 0; i < 4; i++ {
		deck = append(deck, models.Card{Suit: models.Wizard, Rank: models.WizardRank})
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, models.Card{Suit: models.Jester, Rank: models.JesterRank})
	}
	for _, suit := range models.OrdinarySuits {
		for rank := 1; rank <= 13; rank++ {
			deck = append(deck, models.Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// Shuffle returns a uniformly shuffled copy of deck. The permutation is not
// seeded deterministically; callers must not rely on order.
func Shuffle(deck []models.Card) []models.Card {
	shuffled := make([]models.Card, len(deck))
	copy(shuffled, deck)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// SortHand orders a hand in place for display: wildcards first (Wizards
// before Jesters), then by suit group, descending rank within suit.
func SortHand(hand []models.Card) {
	sort.Slice(hand, func(i, j int) bool {
		return hand[i].SortKey() < hand[j].SortKey()
	})
}
