// internal/models/card.go
package models

import "strconv"

// Suit identifies one of the four ordinary suits or one of the two wildcard
// kinds. The string values are the stable wire tags; snapshots written by
// older clients use the same symbols.
type Suit string

const (
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
	Spades   Suit = "♠"
	Wizard   Suit = "🧙"
	Jester   Suit = "🃏"
)

// OrdinarySuits lists the four trump-eligible suits in deck order.
var OrdinarySuits = []Suit{Hearts, Diamonds, Clubs, Spades}

// IsWildcard reports whether the suit is one of the two special kinds.
func (s Suit) IsWildcard() bool {
	return s == Wizard || s == Jester
}

// IsOrdinary reports whether the suit is trump-eligible.
func (s Suit) IsOrdinary() bool {
	switch s {
	case Hearts, Diamonds, Clubs, Spades:
		return true
	}
	return false
}

// Rank values for the wildcard cards. Ordinary cards rank 1 (Ace) through 13
// (King).
const (
	JesterRank = 0
	WizardRank = 14
)

// Card is an immutable (suit, rank) value. The wire key for rank is "value"
// to keep snapshots loadable across implementations.
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"value"`
}

var rankNames = map[int]string{1: "A", 11: "J", 12: "Q", 13: "K"}

// Display returns the table form of the card, e.g. "K♠", "7♥" or "🧙 Wizard".
func (c Card) Display() string {
	switch c.Suit {
	case Wizard:
		return "🧙 Wizard"
	case Jester:
		return "🃏 Jester"
	}
	name, ok := rankNames[c.Rank]
	if !ok {
		name = strconv.Itoa(c.Rank)
	}
	return name + string(c.Suit)
}

// sortGroup orders suits for hand display: wildcards first (Wizards before
// Jesters), then Spades, Hearts, Diamonds, Clubs.
var sortGroup = map[Suit]int{
	Wizard:   0,
	Jester:   1,
	Spades:   2,
	Hearts:   3,
	Diamonds: 4,
	Clubs:    5,
}

// SortKey is the canonical hand ordering key: by suit group, then descending
// rank within the group.
func (c Card) SortKey() int {
	return sortGroup[c.Suit]*16 + (WizardRank - c.Rank)
}
