package simulation

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/okian/elo/internal/domain/rating"
)

// generateEntities creates n unrated entities with hidden strengths.
// IDs are drawn from rng so a seed reproduces the same league.
func generateEntities(rng *rand.Rand, n, league int, initial, spread float64) ([]rating.Entity, error) {
	out := make([]rating.Entity, n)
	for i := range out {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, fmt.Errorf("generate id: %w", err)
		}
		out[i] = rating.Entity{
			FieldID:       id.String(),
			FieldStrength: initial + rng.NormFloat64()*spread,
			FieldLeague:   league,
		}
	}
	return out, nil
}

// drawOutcome samples the result for a against b from their hidden
// strengths: a draw within tieBand of the true expected score is a tie.
func drawOutcome(rng *rand.Rand, engine *rating.Engine[rating.Entity], strengthA, strengthB, tieBand float64) rating.Outcome {
	p := engine.ExpectedScore(rating.Record{Rating: strengthA}, rating.Record{Rating: strengthB})
	u := rng.Float64()
	switch {
	case u >= p-tieBand/2 && u < p+tieBand/2:
		return rating.Tie
	case u < p:
		return rating.Win
	default:
		return rating.Loss
	}
}

func strengthOf(e rating.Entity) float64 {
	s, _ := e[FieldStrength].(float64)
	return s
}

func idOf(e rating.Entity) string {
	id, _ := e[FieldID].(string)
	return id
}
