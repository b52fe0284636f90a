package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/elo/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ELO_D_MAX", "200")
			_ = os.Setenv("ELO_INITIAL_RATING", "1200.5")
			_ = os.Setenv("ELO_RECORD_KEY", "skill")
			_ = os.Setenv("ELO_POOL_SIZE", "64")
			_ = os.Setenv("ELO_CRITERION", "matchCount")
			_ = os.Setenv("ELO_SEED", "7")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DMax, convey.ShouldEqual, 200.0)
				convey.So(cfg.InitialRating, convey.ShouldEqual, 1200.5)
				convey.So(cfg.RecordKey, convey.ShouldEqual, "skill")
				convey.So(cfg.PoolSize, convey.ShouldEqual, 64)
				convey.So(cfg.Criterion, convey.ShouldEqual, "matchCount")
				convey.So(cfg.Seed, convey.ShouldEqual, int64(7))
				convey.So(cfg.Rounds, convey.ShouldEqual, 200) // From defaults
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# league settings
log_level: debug
pool_size: 10
rounds: 50
leagues: 3
criterion: lastPlayedAt
provisional_matches: 10
provisional_k_factor: 40
established_k_factor: 16
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("ELO_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.PoolSize, convey.ShouldEqual, 10)
				convey.So(cfg.Rounds, convey.ShouldEqual, 50)
				convey.So(cfg.Leagues, convey.ShouldEqual, 3)
				convey.So(cfg.Criterion, convey.ShouldEqual, "lastPlayedAt")
				convey.So(cfg.ProvisionalMatches, convey.ShouldEqual, 10)
				convey.So(cfg.ProvisionalKFactor, convey.ShouldEqual, 40.0)
				convey.So(cfg.EstablishedKFactor, convey.ShouldEqual, 16.0)
				convey.So(cfg.DMax, convey.ShouldEqual, 400.0) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, "pool_size: 10\nrounds: 50\n")
			_ = os.Setenv("ELO_CONFIG", tmpFile)
			_ = os.Setenv("ELO_POOL_SIZE", "12")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PoolSize, convey.ShouldEqual, 12) // Overridden by env
				convey.So(cfg.Rounds, convey.ShouldEqual, 50)   // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("ELO_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ELO_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("ELO_POOL_SIZE", "many")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown criterion", func() {
			_ = os.Setenv("ELO_CRITERION", "strongest")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "criterion")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty record key", func() {
			tmpFile := createTempConfigFile(t, "record_key: \"\"\n")
			_ = os.Setenv("ELO_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "record_key must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with negative sizes", func() {
			_ = os.Setenv("ELO_ROUNDS", "-1")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"ELO_CONFIG",
		"ELO_LOG_LEVEL",
		"ELO_D_MAX",
		"ELO_INITIAL_RATING",
		"ELO_RECORD_KEY",
		"ELO_PROVISIONAL_MATCHES",
		"ELO_PROVISIONAL_K_FACTOR",
		"ELO_ESTABLISHED_K_FACTOR",
		"ELO_POOL_SIZE",
		"ELO_ROUNDS",
		"ELO_LEAGUES",
		"ELO_CRITERION",
		"ELO_SEED",
		"ELO_METRICS_FILE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "elo-config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpFile.Name()
}
