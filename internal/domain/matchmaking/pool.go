// Package matchmaking selects which two entities of a pool play next and
// writes rating updates back into the pool.
package matchmaking

import (
	"cmp"
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/okian/elo/internal/domain/rating"
	"github.com/okian/elo/pkg/logger"
	"github.com/okian/elo/pkg/metrics"
)

const defaultPoolName = "default"

// Pool owns an ordered collection of entities. Positions are stable.
//
// A Pool is not safe for concurrent use; callers sharing one must
// serialize their calls.
type Pool[E any] struct {
	engine   *rating.Engine[E]
	entities []E

	name   string
	rng    *rand.Rand
	logger logger.Logger
}

// NewPool creates a pool over a copy of entities.
func NewPool[E any](engine *rating.Engine[E], entities []E, opts ...Option) *Pool[E] {
	o := options{
		name:   defaultPoolName,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // matchmaking is not security sensitive
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pool[E]{
		engine:   engine,
		entities: slices.Clone(entities),
		name:     o.name,
		rng:      o.rng,
		logger:   o.logger,
	}
	metrics.UpdatePoolSize(p.name, len(p.entities))
	return p
}

// NewMapPool creates a pool of Entity values rated by rating.Default.
func NewMapPool(entities []rating.Entity, opts ...Option) *Pool[rating.Entity] {
	return NewPool(rating.Default, entities, opts...)
}

// Engine returns the engine the pool delegates to.
func (p *Pool[E]) Engine() *rating.Engine[E] { return p.engine }

// Len returns the number of entities.
func (p *Pool[E]) Len() int { return len(p.entities) }

// At returns the entity at index.
func (p *Pool[E]) At(index int) (E, error) {
	if err := p.checkIndex(index); err != nil {
		var zero E
		return zero, err
	}
	return p.entities[index], nil
}

// Entities returns a copy of the backing slice.
func (p *Pool[E]) Entities() []E { return slices.Clone(p.entities) }

// Add appends entities at the end of the pool.
func (p *Pool[E]) Add(entities ...E) {
	p.entities = append(p.entities, entities...)
	metrics.UpdatePoolSize(p.name, len(p.entities))
}

// Pick selects two distinct indices to pair next and reports the
// criterion actually used.
//
// With two entities the pair is always (0, 1). Random draws i and a
// non-zero offset to j. MatchCount and LastPlayedAt rank entities
// ascending (stable) and pair the first with the third, skipping the
// second-ranked candidate that most likely just played the first.
func (p *Pool[E]) Pick(c Criterion) (int, int, Criterion, error) {
	if !c.valid() {
		metrics.RecordPickFailure("unknown_criterion")
		return 0, 0, c, fmt.Errorf("%w: %q", ErrUnknownCriterion, string(c))
	}
	if c == Unset {
		c = criteria[p.rng.Intn(len(criteria))]
	}

	n := len(p.entities)
	var i, j int
	switch {
	case n < 2:
		metrics.RecordPickFailure("insufficient_players")
		return 0, 0, c, fmt.Errorf("%w: pool %s has %d", ErrInsufficientPlayers, p.name, n)
	case n == 2:
		i, j = 0, 1
	case c == Random:
		i = p.rng.Intn(n)
		j = (i + 1 + p.rng.Intn(n-1)) % n
	default:
		order := p.rank(c)
		i, j = order[0], order[2]
	}

	metrics.RecordPick(string(c))
	p.logger.Debug(context.Background(), "picked pair",
		logger.String("pool", p.name),
		logger.String("criterion", string(c)),
		logger.Int("i", i),
		logger.Int("j", j),
	)
	return i, j, c, nil
}

// rank returns pool indices ordered ascending by the criterion statistic.
// Entities without a record rank as never played.
func (p *Pool[E]) rank(c Criterion) []int {
	order := make([]int, len(p.entities))
	records := make([]rating.Record, len(p.entities))
	for i, e := range p.entities {
		order[i] = i
		records[i] = p.engine.RecordOf(e)
	}

	slices.SortStableFunc(order, func(a, b int) int {
		if c == MatchCount {
			return cmp.Compare(records[a].MatchCount, records[b].MatchCount)
		}
		return records[a].LastPlayedAt.Compare(records[b].LastPlayedAt)
	})
	return order
}

// ResolveAndWrite resolves a match in which the entity at a scored outcome
// against the entity at b, and stores both updated entities in place.
func (p *Pool[E]) ResolveAndWrite(a, b int, outcome rating.Outcome) error {
	if err := p.checkPair(a, b); err != nil {
		return err
	}
	switch outcome {
	case rating.Win, rating.Tie, rating.Loss:
	default:
		return fmt.Errorf("%w: %g", rating.ErrUnknownOutcome, float64(outcome))
	}

	ea, eb := p.engine.Resolve(outcome, p.entities[a], p.entities[b])
	p.entities[a], p.entities[b] = ea, eb

	ra, rb := p.engine.RecordOf(ea), p.engine.RecordOf(eb)
	metrics.RecordMatchResolved(outcome.String(), ra.LastDelta, rb.LastDelta)
	p.logger.Debug(context.Background(), "match resolved",
		logger.String("pool", p.name),
		logger.String("outcome", outcome.String()),
		logger.Int("a", a),
		logger.Int("b", b),
		logger.Float64("ratingA", ra.Rating),
		logger.Float64("ratingB", rb.Rating),
	)
	return nil
}

// ExpectedScoreBetween returns the probability that the entity at a beats
// the entity at b.
func (p *Pool[E]) ExpectedScoreBetween(a, b int) (float64, error) {
	if err := p.checkIndex(a); err != nil {
		return 0, err
	}
	if err := p.checkIndex(b); err != nil {
		return 0, err
	}
	return p.engine.ExpectedScoreBetween(p.entities[a], p.entities[b]), nil
}

// ResetAt removes the rating record of the entity at index.
func (p *Pool[E]) ResetAt(index int) error {
	if err := p.checkIndex(index); err != nil {
		return err
	}
	p.entities[index] = p.engine.Reset(p.entities[index])
	metrics.RecordReset()
	return nil
}

func (p *Pool[E]) checkIndex(index int) error {
	if index < 0 || index >= len(p.entities) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(p.entities))
	}
	return nil
}

func (p *Pool[E]) checkPair(a, b int) error {
	if err := p.checkIndex(a); err != nil {
		return err
	}
	if err := p.checkIndex(b); err != nil {
		return err
	}
	if a == b {
		return fmt.Errorf("%w: index %d", ErrSelfMatch, a)
	}
	return nil
}
