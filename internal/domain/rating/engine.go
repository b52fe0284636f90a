package rating

import (
	"math"
	"time"
)

// Default is the engine for Entity values with the default configuration.
var Default = NewMapEngine() //nolint:gochecknoglobals // read-only default instance

// Engine computes win probabilities and rating updates. It holds no mutable
// state and is safe for concurrent use.
type Engine[E any] struct {
	cfg Config
	acc Accessor[E]
}

// New creates an engine that reads and writes records through acc.
func New[E any](acc Accessor[E], opts ...Option) *Engine[E] {
	return &Engine[E]{
		cfg: NewConfig(opts...),
		acc: acc,
	}
}

// NewMapEngine creates an engine for Entity values keyed by the configured record key.
func NewMapEngine(opts ...Option) *Engine[Entity] {
	cfg := NewConfig(opts...)
	return &Engine[Entity]{
		cfg: cfg,
		acc: MapAccessor(cfg.RecordKey),
	}
}

// With returns a copy of the engine with opts applied on top of its
// configuration. The accessor is shared, so WithRecordKey has no effect here.
func (e *Engine[E]) With(opts ...Option) *Engine[E] {
	cfg := e.cfg
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine[E]{cfg: cfg, acc: e.acc}
}

// Config returns the engine configuration.
func (e *Engine[E]) Config() Config {
	return e.cfg
}

// KFactor returns the K-factor the engine applies to r.
func (e *Engine[E]) KFactor(r Record) float64 {
	return e.cfg.KFactor(r)
}

// NewRecord returns the record seeded for an entity that never played.
func (e *Engine[E]) NewRecord() Record {
	return Record{Rating: e.cfg.InitialRating}
}

// RecordOf returns the record stored on ent, or a seeded one. The seed is
// not written back.
func (e *Engine[E]) RecordOf(ent E) Record {
	if r, ok := e.acc.Get(ent); ok {
		return r
	}
	return e.NewRecord()
}

// ExpectedScore returns the probability that a beats b.
// ExpectedScore(a, b) + ExpectedScore(b, a) == 1 for finite ratings.
func (e *Engine[E]) ExpectedScore(a, b Record) float64 {
	d := clamp(a.Rating-b.Rating, -e.cfg.DMax, e.cfg.DMax)
	return 1 / (1 + math.Pow(10, -d/e.cfg.DMax))
}

// ResolveMatch returns the records of a and b after a match in which a
// scored outcome. Both probabilities use the pre-match ratings and both
// records share one timestamp.
func (e *Engine[E]) ResolveMatch(outcome Outcome, a, b Record) (Record, Record) {
	playedAt := time.UnixMilli(e.cfg.Clock().UnixMilli())

	pa := e.ExpectedScore(a, b)
	pb := 1 - pa
	ka, kb := e.cfg.KFactor(a), e.cfg.KFactor(b)

	return update(a, ka, outcome, pa, playedAt), update(b, kb, outcome.Complement(), pb, playedAt)
}

// ExpectedScoreBetween returns the probability that entity a beats entity b.
func (e *Engine[E]) ExpectedScoreBetween(a, b E) float64 {
	return e.ExpectedScore(e.RecordOf(a), e.RecordOf(b))
}

// Resolve applies ResolveMatch to two entities and returns updated copies.
func (e *Engine[E]) Resolve(outcome Outcome, a, b E) (E, E) {
	ra, rb := e.ResolveMatch(outcome, e.RecordOf(a), e.RecordOf(b))
	return e.acc.Set(a, ra), e.acc.Set(b, rb)
}

// Wins resolves a match that a won against b.
func (e *Engine[E]) Wins(a, b E) (E, E) { return e.Resolve(Win, a, b) }

// Ties resolves a drawn match between a and b.
func (e *Engine[E]) Ties(a, b E) (E, E) { return e.Resolve(Tie, a, b) }

// Loses resolves a match that a lost against b.
func (e *Engine[E]) Loses(a, b E) (E, E) { return e.Resolve(Loss, a, b) }

// Reset returns a copy of ent without its rating record.
func (e *Engine[E]) Reset(ent E) E {
	return e.acc.Clear(ent)
}

func update(r Record, k float64, outcome Outcome, p float64, playedAt time.Time) Record {
	rating := r.Rating + k*(float64(outcome)-p)
	return Record{
		Rating:       rating,
		MatchCount:   r.MatchCount + 1,
		LastDelta:    rating - r.Rating,
		LastPlayedAt: playedAt,
	}
}

func clamp(v, lower, upper float64) float64 {
	return math.Max(math.Min(v, upper), lower)
}
