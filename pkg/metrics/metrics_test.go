package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it gets a private registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
			})
		})

		Convey("When creating two managers with custom options", func() {
			build := func() *Manager {
				return NewManager(
					WithNamespace("test"),
					WithSubsystem("pool"),
					WithHistogramBuckets([]float64{1, 10, 100}),
					WithDeltaBuckets([]float64{-10, 0, 10}),
					WithConstLabels(map[string]string{"env": "test"}),
					WithPrometheusRegistry(prometheus.NewRegistry()),
				)
			}

			Convey("Then they do not collide", func() {
				So(func() { build(); build() }, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording picks", func() {
			m.RecordPick("random")
			m.RecordPick("random")
			m.RecordPick("matchCount")
			m.RecordPickFailure("insufficient_players")

			Convey("Then counters are split by label", func() {
				So(sample(m, "elo_matchmaking_picks_total", "random"), ShouldEqual, 2.0)
				So(sample(m, "elo_matchmaking_picks_total", "matchCount"), ShouldEqual, 1.0)
				So(sample(m, "elo_matchmaking_pick_failures_total", "insufficient_players"), ShouldEqual, 1.0)
			})
		})

		Convey("When recording matches", func() {
			m.RecordMatchResolved("win", 16, -16)
			m.RecordMatchResolved("tie", 0, 0)

			Convey("Then matches and deltas are counted", func() {
				So(sample(m, "elo_matchmaking_matches_resolved_total", "win"), ShouldEqual, 1.0)
				So(sample(m, "elo_matchmaking_matches_resolved_total", "tie"), ShouldEqual, 1.0)
				So(sample(m, "elo_matchmaking_rating_delta", ""), ShouldEqual, 4.0)
			})
		})

		Convey("When updating gauges and counters", func() {
			m.UpdatePoolSize("league-0", 8)
			m.UpdatePoolSize("league-0", 9)
			m.RecordReset()
			m.RecordSimulationRound()
			m.RecordSimulationDuration(12.5)

			Convey("Then the latest values are kept", func() {
				So(sample(m, "elo_matchmaking_pool_size", "league-0"), ShouldEqual, 9.0)
				So(sample(m, "elo_matchmaking_resets_total", ""), ShouldEqual, 1.0)
				So(sample(m, "elo_matchmaking_simulation_rounds_total", ""), ShouldEqual, 1.0)
			})
		})

		Convey("When writing a textfile", func() {
			m.RecordPick("lastPlayedAt")
			path := filepath.Join(t.TempDir(), "elo.prom")
			err := m.WriteTextfile(path)

			Convey("Then the exposition contains the series", func() {
				So(err, ShouldBeNil)
				b, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `elo_matchmaking_picks_total{criterion="lastPlayedAt"} 1`)
			})
		})

		Convey("When writing to a missing directory", func() {
			err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "elo.prom"))

			Convey("Then the error is wrapped", func() {
				So(errors.Is(err, ErrWriteTextfile), ShouldBeTrue)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then package-level recorders do not panic", func() {
			So(func() {
				RecordPick("random")
				RecordPickFailure("unknown_criterion")
				UpdatePoolSize("default", 3)
				RecordMatchResolved("loss", -16, 16)
				RecordReset()
				RecordSimulationRound()
				RecordSimulationDuration(1)
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}

// sample returns the value of the series in family name whose single label
// has value label (or the unlabelled series when label is empty).
// Histograms report their sample count.
func sample(m *Manager, name, label string) float64 {
	families, err := m.Registry().Gather()
	if err != nil {
		panic(err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if label != "" {
				pairs := metric.GetLabel()
				if len(pairs) == 0 || pairs[0].GetValue() != label {
					continue
				}
			}
			switch {
			case metric.GetCounter() != nil:
				return metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				return metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				return float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return -1
}
