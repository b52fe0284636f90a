package matchmaking

import (
	"fmt"
	"strings"
)

// Criterion selects the pairing heuristic used by Pool.Pick.
type Criterion string

// Supported criteria. Unset picks one of the others uniformly at random.
const (
	Unset        Criterion = ""
	Random       Criterion = "random"
	MatchCount   Criterion = "matchCount"
	LastPlayedAt Criterion = "lastPlayedAt"
)

// criteria lists the criteria Unset chooses from.
var criteria = [...]Criterion{Random, MatchCount, LastPlayedAt} //nolint:gochecknoglobals // fixed table

// ParseCriterion converts a name into a Criterion. Matching ignores case,
// and "", "any" and "auto" map to Unset.
func ParseCriterion(s string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "auto":
		return Unset, nil
	case "random":
		return Random, nil
	case "matchcount", "match_count":
		return MatchCount, nil
	case "lastplayedat", "last_played_at":
		return LastPlayedAt, nil
	default:
		return Unset, fmt.Errorf("%w: %q", ErrUnknownCriterion, s)
	}
}

func (c Criterion) valid() bool {
	switch c {
	case Unset, Random, MatchCount, LastPlayedAt:
		return true
	default:
		return false
	}
}
