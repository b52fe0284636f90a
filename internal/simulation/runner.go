package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/elo/internal/domain/matchmaking"
	"github.com/okian/elo/internal/domain/rating"
	"github.com/okian/elo/pkg/logger"
	"github.com/okian/elo/pkg/metrics"
)

// Option applies a configuration option to Run.
type Option func(*runner)

// WithLogger sets the logger used for progress output.
func WithLogger(l logger.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// roundInterval is the simulated time between two rounds of a league.
const roundInterval = time.Minute

// leagueClock is a simulated clock that moves forward once per round, so
// lastPlayedAt ranking sees distinct timestamps however fast rounds run.
type leagueClock struct {
	now time.Time
}

func (c *leagueClock) Now() time.Time { return c.now }

func (c *leagueClock) advance() { c.now = c.now.Add(roundInterval) }

type runner struct {
	cfg    Config
	engine *rating.Engine[rating.Entity]
	logger logger.Logger
}

// Run plays cfg.Rounds matches in each of cfg.Leagues pools. Leagues run
// concurrently; each derives its own engine from engine with a simulated
// clock starting at the run start, and every pool stays on its own goroutine.
// Cancelling ctx stops all leagues between rounds.
func Run(ctx context.Context, cfg Config, engine *rating.Engine[rating.Entity], opts ...Option) (*Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if engine == nil {
		engine = rating.Default
	}

	r := &runner{cfg: cfg, engine: engine, logger: logger.Nop()}
	for _, opt := range opts {
		opt(r)
	}

	stats := Stats{Leagues: cfg.Leagues, StartTime: time.Now()}
	epoch := stats.StartTime.Truncate(time.Millisecond)
	r.logger.Info(ctx, "starting simulation",
		logger.Int("leagues", cfg.Leagues),
		logger.Int("poolSize", cfg.PoolSize),
		logger.Int("rounds", cfg.Rounds),
		logger.String("criterion", string(cfg.Criterion)),
	)

	leagues := make([]League, cfg.Leagues)
	errs := make([]error, cfg.Leagues)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Leagues; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			leagues[i], errs[i] = r.runLeague(ctx, i, epoch)
		}(i)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	for _, l := range leagues {
		stats.Wins += l.Wins
		stats.Ties += l.Ties
		stats.Losses += l.Losses
	}
	stats.Rounds = stats.Wins + stats.Ties + stats.Losses
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	r.logger.Info(ctx, "simulation completed",
		logger.Int("rounds", stats.Rounds),
		logger.Int("wins", stats.Wins),
		logger.Int("ties", stats.Ties),
		logger.Int("losses", stats.Losses),
		logger.Any("duration", stats.Duration),
	)
	return &Result{Leagues: leagues, Stats: stats}, nil
}

func (r *runner) runLeague(ctx context.Context, index int, epoch time.Time) (League, error) {
	start := time.Now()
	name := fmt.Sprintf("league-%d", index)
	rng := rand.New(rand.NewSource(r.cfg.Seed + int64(index))) //nolint:gosec // reproducible simulation
	clock := &leagueClock{now: epoch}
	engine := r.engine.With(rating.WithClock(clock.Now))

	entities, err := generateEntities(rng, r.cfg.PoolSize, index, engine.Config().InitialRating, r.cfg.StrengthSpread)
	if err != nil {
		return League{}, fmt.Errorf("%s: %w", name, err)
	}

	pool := matchmaking.NewPool(engine, entities,
		matchmaking.WithName(name),
		matchmaking.WithRand(rng),
		matchmaking.WithLogger(r.logger.Named(name)),
	)

	league := League{Name: name, Picks: make(map[matchmaking.Criterion]int)}
	for round := 0; round < r.cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return League{}, fmt.Errorf("%s: round %d: %w", name, round, err)
		}
		clock.advance()

		i, j, used, err := pool.Pick(r.cfg.Criterion)
		if err != nil {
			return League{}, fmt.Errorf("%s: round %d: %w", name, round, err)
		}
		a, _ := pool.At(i)
		b, _ := pool.At(j)
		outcome := drawOutcome(rng, engine, strengthOf(a), strengthOf(b), r.cfg.TieBand)
		if err := pool.ResolveAndWrite(i, j, outcome); err != nil {
			return League{}, fmt.Errorf("%s: round %d: %w", name, round, err)
		}

		league.Picks[used]++
		switch outcome {
		case rating.Win:
			league.Wins++
		case rating.Tie:
			league.Ties++
		default:
			league.Losses++
		}
		metrics.RecordSimulationRound()
	}

	league.Standings = buildStandings(engine, pool.Entities())
	league.Duration = time.Since(start)
	metrics.RecordSimulationDuration(float64(league.Duration.Milliseconds()))
	r.logger.Debug(ctx, "league finished", logger.String("league", name), logger.Any("duration", league.Duration))
	return league, nil
}
