package matchmaking

import (
	"math/rand"

	"github.com/okian/elo/pkg/logger"
)

// options is shared by every Pool instantiation.
type options struct {
	name   string
	rng    *rand.Rand
	logger logger.Logger
}

// Option applies a configuration option to a Pool.
type Option func(*options)

// WithName labels the pool in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithRand sets the random source used by the random criterion and by
// criterion auto-selection. The pool does not lock it.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // matchmaking is not security sensitive
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
