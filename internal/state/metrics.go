package state

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the state container counters. A nil *Metrics records nothing.
type Metrics struct {
	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	slotLoads       *prometheus.CounterVec
}

// NewMetrics registers the state counters with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "e_shopping",
			Subsystem: "state",
			Name:      "mutations_total",
			Help:      "Completed state mutations by store and operation",
		}, []string{"store", "operation"}),

		persistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "e_shopping",
			Subsystem: "state",
			Name:      "persist_failures_total",
			Help:      "State slot writes that failed and were dropped",
		}, []string{"slot"}),

		slotLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "e_shopping",
			Subsystem: "state",
			Name:      "slot_loads_total",
			Help:      "State slot reads at initialization by result",
		}, []string{"slot", "result"}),
	}
}

func (m *Metrics) mutation(store, op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(store, op).Inc()
}

func (m *Metrics) persistFailure(slot string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(slot).Inc()
}

func (m *Metrics) load(slot, result string) {
	if m == nil {
		return
	}
	m.slotLoads.WithLabelValues(slot, result).Inc()
}
