package trackers

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/samuelfneumann/gotd/timestep"
)

// Metrics exports episodic data of an experiment as Prometheus
// metrics, labelled by the ID of the run
type Metrics struct {
	run           string
	currentReturn float64

	steps    *prometheus.CounterVec
	episodes *prometheus.CounterVec
	ret      *prometheus.GaugeVec
	length   *prometheus.GaugeVec
}

// NewMetrics registers the metrics of a run with reg and returns a new
// Metrics tracker. Multiple runs may share a Registerer, but the
// metrics of a single run must only be tracked by one Metrics tracker.
func NewMetrics(reg prometheus.Registerer, run string) *Metrics {
	labels := []string{"run"}

	return &Metrics{
		run: run,
		steps: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gotd",
			Name:      "steps_total",
			Help:      "Number of environment steps taken",
		}, labels)),
		episodes: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gotd",
			Name:      "episodes_total",
			Help:      "Number of finished episodes",
		}, labels)),
		ret: register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gotd",
			Name:      "episode_return",
			Help:      "Return of the last finished episode",
		}, labels)),
		length: register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gotd",
			Name:      "episode_length",
			Help:      "Number of steps in the last finished episode",
		}, labels)),
	}
}

// Track implements the tracker.Tracker interface
func (m *Metrics) Track(t timestep.TimeStep) {
	if t.First() {
		m.currentReturn = 0
		return
	}

	m.steps.WithLabelValues(m.run).Inc()
	m.currentReturn += t.Reward

	if t.Last() {
		m.episodes.WithLabelValues(m.run).Inc()
		m.ret.WithLabelValues(m.run).Set(m.currentReturn)
		m.length.WithLabelValues(m.run).Set(float64(t.Number))
		m.currentReturn = 0
	}
}

// Save implements the tracker.Tracker interface. Metrics are exported
// as they are tracked, so there is nothing to save.
func (m *Metrics) Save() error {
	return nil
}

// register registers c with reg, returning the collector which was
// already registered in its place if there is one
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	panic(fmt.Sprintf("register: %v", err))
}
