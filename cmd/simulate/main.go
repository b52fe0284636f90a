package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/elo/internal/config"
	"github.com/okian/elo/internal/domain/matchmaking"
	"github.com/okian/elo/internal/domain/rating"
	"github.com/okian/elo/internal/simulation"
	"github.com/okian/elo/pkg/logger"
	"github.com/okian/elo/pkg/metrics"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env); flags override it.
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString("invalid flags: " + err.Error() + "\n")
		os.Exit(2)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "simulation failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func parseFlags(cfg *config.Config) {
	flag.IntVar(&cfg.PoolSize, "players", cfg.PoolSize, "Number of entities per league")
	flag.IntVar(&cfg.Rounds, "rounds", cfg.Rounds, "Number of matches per league")
	flag.IntVar(&cfg.Leagues, "leagues", cfg.Leagues, "Number of leagues simulated concurrently")
	flag.StringVar(&cfg.Criterion, "criterion", cfg.Criterion, "Pick criterion: random, matchCount, lastPlayedAt (empty for auto)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	flag.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus metrics to this file after the run")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	criterion, err := matchmaking.ParseCriterion(cfg.Criterion)
	if err != nil {
		return err
	}

	engine := rating.NewMapEngine(
		rating.WithDMax(cfg.DMax),
		rating.WithInitialRating(cfg.InitialRating),
		rating.WithRecordKey(cfg.RecordKey),
		rating.WithProvisionalKFactor(cfg.ProvisionalMatches, cfg.ProvisionalKFactor, cfg.EstablishedKFactor),
	)

	res, err := simulation.Run(ctx, simulation.Config{
		PoolSize:  cfg.PoolSize,
		Rounds:    cfg.Rounds,
		Leagues:   cfg.Leagues,
		Criterion: criterion,
		Seed:      cfg.Seed,
	}, engine, simulation.WithLogger(log.Named("simulation")))
	if err != nil {
		return err
	}

	if err := simulation.WriteStandings(os.Stdout, res); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		log.Info(ctx, "metrics written", logger.String("path", cfg.MetricsFile))
	}
	return nil
}
