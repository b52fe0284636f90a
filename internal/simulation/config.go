// Package simulation runs ladder leagues: pools of entities with hidden
// strengths that are paired and rated round by round.
package simulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/okian/elo/internal/domain/matchmaking"
)

// Default simulation constants.
const (
	defaultTieBand        = 0.1
	defaultStrengthSpread = 200.0
)

// Entity field names used by generated entities.
const (
	FieldID       = "id"
	FieldStrength = "strength"
	FieldLeague   = "league"
)

// ErrInvalidSimulation reports an unusable simulation configuration.
var ErrInvalidSimulation = errors.New("invalid simulation")

// Config holds configuration for one simulation run.
type Config struct {
	PoolSize  int                   // entities per league
	Rounds    int                   // matches per league
	Leagues   int                   // independent pools run concurrently
	Criterion matchmaking.Criterion // pick criterion, Unset for auto
	Seed      int64                 // league i uses Seed+i

	// TieBand is the probability mass around the expected score that
	// resolves as a tie.
	TieBand float64

	// StrengthSpread is the standard deviation of hidden strengths around
	// the initial rating.
	StrengthSpread float64
}

func (c Config) withDefaults() Config {
	if c.Leagues == 0 {
		c.Leagues = 1
	}
	if c.TieBand == 0 {
		c.TieBand = defaultTieBand
	}
	if c.StrengthSpread == 0 {
		c.StrengthSpread = defaultStrengthSpread
	}
	return c
}

func (c Config) validate() error {
	switch {
	case c.PoolSize < 0 || c.Rounds < 0 || c.Leagues < 0:
		return fmt.Errorf("%w: negative size", ErrInvalidSimulation)
	case c.TieBand < 0 || c.TieBand > 1:
		return fmt.Errorf("%w: tie band %g not in [0, 1]", ErrInvalidSimulation, c.TieBand)
	}
	return nil
}

// Standing is one row of a league table.
type Standing struct {
	Rank       int
	ID         string
	Rating     float64
	Strength   float64
	MatchCount int
	LastDelta  float64
}

// League holds the outcome of one simulated pool.
type League struct {
	Name      string
	Standings []Standing
	Picks     map[matchmaking.Criterion]int
	Wins      int
	Ties      int
	Losses    int
	Duration  time.Duration
}

// Stats aggregates a whole run.
type Stats struct {
	Leagues   int
	Rounds    int
	Wins      int
	Ties      int
	Losses    int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Result is returned by Run.
type Result struct {
	Leagues []League
	Stats   Stats
}
