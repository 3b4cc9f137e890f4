// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects simulation statistics. A nil *Metrics is valid and records
// nothing.
//
type Metrics struct {
	builds         prometheus.Counter
	stabilizations prometheus.Counter
	rounds         prometheus.Histogram
	oscillations   prometheus.Counter
	toggles        prometheus.Counter
	warnings       *prometheus.CounterVec
}

// NewMetrics creates the simulator metrics and registers them with reg. If reg
// is nil, the metrics are created but not registered.
//
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logicsim_builds_total",
			Help: "Number of netlists assembled.",
		}),
		stabilizations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logicsim_stabilizations_total",
			Help: "Number of stabilization loops run.",
		}),
		rounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "logicsim_stabilization_rounds",
			Help:    "Evaluation rounds needed to settle a circuit.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 100},
		}),
		oscillations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logicsim_oscillations_total",
			Help: "Number of stabilization loops that hit the round limit.",
		}),
		toggles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logicsim_input_toggles_total",
			Help: "Number of primary input changes.",
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logicsim_warnings_total",
			Help: "Number of warnings by kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.builds, m.stabilizations, m.rounds, m.oscillations, m.toggles, m.warnings)
	}
	return m
}

func (m *Metrics) build() {
	if m != nil {
		m.builds.Inc()
	}
}

func (m *Metrics) stabilized(rounds int, settled bool) {
	if m == nil {
		return
	}
	m.stabilizations.Inc()
	m.rounds.Observe(float64(rounds))
	if !settled {
		m.oscillations.Inc()
	}
}

func (m *Metrics) toggle() {
	if m != nil {
		m.toggles.Inc()
	}
}

func (m *Metrics) warn(k WarningKind) {
	if m != nil {
		m.warnings.WithLabelValues(k.String()).Inc()
	}
}
