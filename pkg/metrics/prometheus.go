package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var defaultDeltaBuckets = []float64{-32, -24, -16, -8, -4, -1, 0, 1, 4, 8, 16, 24, 32} //nolint:gochecknoglobals // bucket table

// Manager owns the rating and matchmaking metrics on one registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	deltaBuckets     []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	// Matchmaking
	picks        *prometheus.CounterVec
	pickFailures *prometheus.CounterVec
	poolSize     *prometheus.GaugeVec

	// Rating
	matchesResolved *prometheus.CounterVec
	ratingDelta     prometheus.Histogram
	resets          prometheus.Counter

	// Simulation
	simulationRounds   prometheus.Counter
	simulationDuration prometheus.Histogram
}

// Global metrics manager instance on its own registry.
var globalManager = NewManager() //nolint:gochecknoglobals // singleton metrics manager

// NewManager creates a metrics manager. Without WithPrometheusRegistry it
// registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "elo",
		subsystem:        "matchmaking",
		histogramBuckets: prometheus.DefBuckets,
		deltaBuckets:     defaultDeltaBuckets,
		constLabels:      make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.picks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "picks_total",
		Help:        "Total number of pairs picked, by criterion actually used",
		ConstLabels: m.constLabels,
	}, []string{"criterion"})

	m.pickFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pick_failures_total",
		Help:        "Total number of failed picks, by reason",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.poolSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pool_size",
		Help:        "Number of entities held by a pool",
		ConstLabels: m.constLabels,
	}, []string{"pool"})

	m.matchesResolved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "matches_resolved_total",
		Help:        "Total number of resolved matches, by outcome for the first participant",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.ratingDelta = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rating_delta",
		Help:        "Signed rating change per participant per match",
		Buckets:     m.deltaBuckets,
		ConstLabels: m.constLabels,
	})

	m.resets = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "resets_total",
		Help:        "Total number of rating records removed",
		ConstLabels: m.constLabels,
	})

	m.simulationRounds = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "simulation_rounds_total",
		Help:        "Total number of simulated rounds",
		ConstLabels: m.constLabels,
	})

	m.simulationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "simulation_duration_milliseconds",
		Help:        "Wall time of a simulated league in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
}

// Registry returns the registry the manager registers on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// RecordPick counts a successful pick.
func (m *Manager) RecordPick(criterion string) { m.picks.WithLabelValues(criterion).Inc() }

// RecordPickFailure counts a failed pick.
func (m *Manager) RecordPickFailure(reason string) { m.pickFailures.WithLabelValues(reason).Inc() }

// UpdatePoolSize sets the entity count of a pool.
func (m *Manager) UpdatePoolSize(pool string, n int) {
	m.poolSize.WithLabelValues(pool).Set(float64(n))
}

// RecordMatchResolved counts a match and observes both deltas.
func (m *Manager) RecordMatchResolved(outcome string, deltaA, deltaB float64) {
	m.matchesResolved.WithLabelValues(outcome).Inc()
	m.ratingDelta.Observe(deltaA)
	m.ratingDelta.Observe(deltaB)
}

// RecordReset counts a removed rating record.
func (m *Manager) RecordReset() { m.resets.Inc() }

// RecordSimulationRound counts one simulated round.
func (m *Manager) RecordSimulationRound() { m.simulationRounds.Inc() }

// RecordSimulationDuration observes the wall time of a league in milliseconds.
func (m *Manager) RecordSimulationDuration(ms float64) { m.simulationDuration.Observe(ms) }

// WriteTextfile writes every metric of the registry to path in the text
// exposition format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}

// RecordPick records a successful pick using the global manager.
func RecordPick(criterion string) { globalManager.RecordPick(criterion) }

// RecordPickFailure records a failed pick using the global manager.
func RecordPickFailure(reason string) { globalManager.RecordPickFailure(reason) }

// UpdatePoolSize sets the entity count of a pool using the global manager.
func UpdatePoolSize(pool string, n int) { globalManager.UpdatePoolSize(pool, n) }

// RecordReset records a rating reset using the global manager.
func RecordReset() { globalManager.RecordReset() }

// RecordSimulationRound records a simulated round using the global manager.
func RecordSimulationRound() { globalManager.RecordSimulationRound() }

// RecordSimulationDuration records a league duration using the global manager.
func RecordSimulationDuration(ms float64) { globalManager.RecordSimulationDuration(ms) }

// RecordMatchResolved records a resolved match and both rating deltas using
// the global manager.
func RecordMatchResolved(outcome string, deltaA, deltaB float64) {
	globalManager.RecordMatchResolved(outcome, deltaA, deltaB)
}

// WriteTextfile writes the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }

// GetRegistry returns the registry used by the global manager.
func GetRegistry() *prometheus.Registry { return globalManager.Registry() }
