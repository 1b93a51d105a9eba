// internal/game/result.go
package game

// Reason explains why a transition was rejected. Rejections are expected
// outcomes (a stale client acting out of turn, a race on rejoin), not errors.
type Reason string

const (
	ReasonWrongPhase       Reason = "wrong_phase"
	ReasonNotYourTurn      Reason = "not_your_turn"
	ReasonNotDealer        Reason = "not_dealer"
	ReasonNotHost          Reason = "not_host"
	ReasonUnknownPlayer    Reason = "unknown_player"
	ReasonGameFull         Reason = "game_full"
	ReasonAlreadySeated    Reason = "already_seated"
	ReasonCardNotHeld      Reason = "card_not_held"
	ReasonIllegalPlay      Reason = "illegal_play"
	ReasonInvalidSuit      Reason = "invalid_suit"
	ReasonInvalidBid       Reason = "invalid_bid"
	ReasonForbiddenBid     Reason = "forbidden_bid"
	ReasonNotEnoughPlayers Reason = "not_enough_players"
	ReasonNoMatchingSeat   Reason = "no_matching_seat"
	ReasonEmptyMessage     Reason = "empty_message"
)

// Result reports whether a transition committed. When Applied is false the
// aggregate is unchanged and Reason says why.
type Result struct {
	Applied bool   `json:"applied"`
	Reason  Reason `json:"reason,omitempty"`
}

func applied() Result { return Result{Applied: true} }

func rejected(r Reason) Result { return Result{Reason: r} }
