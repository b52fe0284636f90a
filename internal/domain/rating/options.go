package rating

import "time"

// Default rating configuration constants.
const (
	DefaultDMax               = 400
	DefaultInitialRating      = 1500
	DefaultRecordKey          = "elo"
	DefaultProvisionalMatches = 30
	DefaultProvisionalK       = 32
	DefaultEstablishedK       = 24
)

// KFactorFunc maps a record to the K-factor used for its next update.
type KFactorFunc func(Record) float64

// ProvisionalKFactor returns a policy that uses provisionalK while the record
// has fewer than matches resolved matches and establishedK afterwards.
func ProvisionalKFactor(matches int, provisionalK, establishedK float64) KFactorFunc {
	return func(r Record) float64 {
		if r.MatchCount < matches {
			return provisionalK
		}
		return establishedK
	}
}

// Config holds the parameters shared by every engine operation.
// DMax must be positive; it is not validated and a zero value yields NaN/Inf.
type Config struct {
	DMax          float64
	InitialRating float64
	KFactor       KFactorFunc
	RecordKey     string
	Clock         func() time.Time
}

// Option applies a configuration option to a Config.
type Option func(*Config)

// WithDMax sets the rating difference clamp bound.
func WithDMax(dMax float64) Option {
	return func(c *Config) {
		c.DMax = dMax
	}
}

// WithInitialRating sets the rating seeded for entities without a record.
func WithInitialRating(r float64) Option {
	return func(c *Config) {
		c.InitialRating = r
	}
}

// WithKFactor replaces the K-factor policy.
func WithKFactor(fn KFactorFunc) Option {
	return func(c *Config) {
		if fn != nil {
			c.KFactor = fn
		}
	}
}

// WithProvisionalKFactor configures the provisional K-factor policy.
func WithProvisionalKFactor(matches int, provisionalK, establishedK float64) Option {
	return WithKFactor(ProvisionalKFactor(matches, provisionalK, establishedK))
}

// WithRecordKey sets the key the record is stored under on map entities.
func WithRecordKey(key string) Option {
	return func(c *Config) {
		if key != "" {
			c.RecordKey = key
		}
	}
}

// WithClock sets the timestamp source used once per resolved match.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		if clock != nil {
			c.Clock = clock
		}
	}
}

// NewConfig builds a Config from the defaults and the given options.
func NewConfig(opts ...Option) Config {
	c := Config{
		DMax:          DefaultDMax,
		InitialRating: DefaultInitialRating,
		KFactor:       ProvisionalKFactor(DefaultProvisionalMatches, DefaultProvisionalK, DefaultEstablishedK),
		RecordKey:     DefaultRecordKey,
		Clock:         time.Now,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
