package ir

// metrics.go is a thin abstraction over Prometheus so that bingraph can be
// used with or without metrics, following the same noop/prometheus split as
// the teacher's pkg/metrics.go. Metrics here track graph mutation volume
// (inserts/removals per kind) and live arena occupancy — the bingraph
// analogue of the teacher's cache hit/miss/eviction counters.
//
// ┌───────────────────────────────┐
// │ Metric                │ Type │
// ├────────────────────────┼──────┤
// │ nodes_inserted_total   │ Ctr  │
// │ nodes_removed_total    │ Ctr  │
// │ nodes_live             │ Gge  │
// └───────────────────────────────┘
//
// © 2025 bingraph authors. MIT License.

import "github.com/prometheus/client_golang/prometheus"

// metricsSink abstracts the concrete backend (Prometheus vs noop), kept
// internal so Context and the node kind files only depend on these methods.
type metricsSink interface {
	incInserted(kind Kind)
	incRemoved(kind Kind)
	setLive(kind Kind, n int)
}

type noopMetrics struct{}

func (noopMetrics) incInserted(Kind)    {}
func (noopMetrics) incRemoved(Kind)     {}
func (noopMetrics) setLive(Kind, int)   {}

type promMetrics struct {
	inserted *prometheus.CounterVec
	removed  *prometheus.CounterVec
	live     *prometheus.GaugeVec
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	label := []string{"kind"}
	pm := &promMetrics{
		inserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bingraph",
			Name:      "nodes_inserted_total",
			Help:      "Number of nodes inserted into the graph, by kind.",
		}, label),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bingraph",
			Name:      "nodes_removed_total",
			Help:      "Number of nodes removed from the graph, by kind.",
		}, label),
		live: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bingraph",
			Name:      "nodes_live",
			Help:      "Number of live nodes currently in the graph, by kind.",
		}, label),
	}
	reg.MustRegister(pm.inserted, pm.removed, pm.live)
	return pm
}

func (m *promMetrics) incInserted(kind Kind) {
	m.inserted.WithLabelValues(kind.String()).Inc()
}
func (m *promMetrics) incRemoved(kind Kind) {
	m.removed.WithLabelValues(kind.String()).Inc()
}
func (m *promMetrics) setLive(kind Kind, n int) {
	m.live.WithLabelValues(kind.String()).Set(float64(n))
}
