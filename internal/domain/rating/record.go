// Package rating implements the Elo rating engine: win probabilities and
// post-match rating updates for two competing entities.
package rating

import (
	"fmt"
	"strings"
	"time"
)

// Record is the rating state attached to a single entity.
//
// A record that never played has MatchCount 0, LastDelta 0 and a zero
// LastPlayedAt. LastDelta alone cannot tell "never played" from a match
// that moved the rating by exactly zero; use Played for that.
type Record struct {
	Rating     float64 `json:"elo"`
	MatchCount int     `json:"matchCount"`

	// LastDelta is the signed change from the most recent match. It is 0
	// both before the first match and after a zero-change result.
	LastDelta float64 `json:"lastDelta"`

	LastPlayedAt time.Time `json:"lastPlayedAt"` // zero when the entity never played
}

// Played reports whether the record has at least one resolved match. It is
// the discriminator for "never played"; LastDelta is not.
func (r Record) Played() bool {
	return r.MatchCount > 0
}

// Outcome is a match result seen from the first participant.
type Outcome float64

// Supported outcomes.
const (
	Loss Outcome = 0
	Tie  Outcome = 0.5
	Win  Outcome = 1
)

// Complement returns the outcome seen from the opponent.
func (o Outcome) Complement() Outcome {
	return 1 - o
}

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Tie:
		return "tie"
	case Loss:
		return "loss"
	default:
		return fmt.Sprintf("outcome(%g)", float64(o))
	}
}

// ParseOutcome converts win, tie or loss (case-insensitive) into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win", "wins":
		return Win, nil
	case "tie", "ties", "draw":
		return Tie, nil
	case "loss", "lose", "loses":
		return Loss, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
	}
}
