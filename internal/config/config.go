// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and env vars on top.
// - Errors returned by Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DMax is the rating difference clamp bound.
	DMax float64 `koanf:"d_max"`

	// InitialRating seeds entities that never played.
	InitialRating float64 `koanf:"initial_rating"`

	// RecordKey names the entity field holding the rating record.
	RecordKey string `koanf:"record_key"`

	// ProvisionalMatches is the number of matches played with ProvisionalKFactor
	// before switching to EstablishedKFactor.
	ProvisionalMatches int     `koanf:"provisional_matches"`
	ProvisionalKFactor float64 `koanf:"provisional_k_factor"`
	EstablishedKFactor float64 `koanf:"established_k_factor"`

	// PoolSize is the number of entities per simulated league.
	PoolSize int `koanf:"pool_size"`

	// Rounds is the number of matches played per league.
	Rounds int `koanf:"rounds"`

	// Leagues is the number of independent pools simulated concurrently.
	Leagues int `koanf:"leagues"`

	// Criterion is the pick criterion: random, matchCount, lastPlayedAt, or empty for auto.
	Criterion string `koanf:"criterion"`

	// Seed drives every random source of the simulation.
	Seed int64 `koanf:"seed"`

	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string `koanf:"metrics_file"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		DMax:               400,
		InitialRating:      1500,
		RecordKey:          "elo",
		ProvisionalMatches: 30,
		ProvisionalKFactor: 32,
		EstablishedKFactor: 24,
		PoolSize:           16,
		Rounds:             200,
		Leagues:            1,
		Criterion:          "",
		Seed:               42,
		MetricsFile:        "",
	}
}
