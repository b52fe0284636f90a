package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/elo/internal/domain/matchmaking"
)

// Environment variable names.
const (
	EnvPrefix = "ELO_"
	EnvFile   = "ELO_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ELO_CONFIG is set
//  3. env (prefix ELO_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// ELO_POOL_SIZE -> pool_size; keys are flat so underscores are kept.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}
	// ELO_CONFIG itself is not a setting.
	k.Delete("config")

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks fields that would otherwise fail far from their source.
// Numeric rating parameters are passed through unchecked.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RecordKey) == "" {
		return fmt.Errorf("%w: record_key must not be empty", ErrInvalidConfig)
	}
	if _, err := matchmaking.ParseCriterion(c.Criterion); err != nil {
		return fmt.Errorf("%w: criterion: %w", ErrInvalidConfig, err)
	}
	if c.PoolSize < 0 || c.Rounds < 0 || c.Leagues < 0 {
		return fmt.Errorf("%w: pool_size, rounds and leagues must not be negative", ErrInvalidConfig)
	}
	return nil
}
