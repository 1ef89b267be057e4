package sqlite

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts store operations and JSONL flushes. A nil *Metrics
// records nothing.
type Metrics struct {
	Operations *prometheus.CounterVec
	Flushes    prometheus.Counter
	Loaded     prometheus.Gauge
}

// NewMetrics creates the store metrics and registers them with reg when
// reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gentry",
				Subsystem: "store",
				Name:      "operations_total",
				Help:      "Total number of entry table operations",
			},
			[]string{"op", "status"},
		),
		Flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gentry",
			Subsystem: "store",
			Name:      "jsonl_flushes_total",
			Help:      "Total number of entries.jsonl rewrites",
		}),
		Loaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gentry",
			Subsystem: "store",
			Name:      "entries_loaded",
			Help:      "Entries loaded from entries.jsonl on the last attach",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Flushes, m.Loaded)
	}
	return m
}

func (m *Metrics) op(name string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Operations.WithLabelValues(name, status).Inc()
}

func (m *Metrics) flushed() {
	if m == nil {
		return
	}
	m.Flushes.Inc()
}

func (m *Metrics) loaded(n int) {
	if m == nil {
		return
	}
	m.Loaded.Set(float64(n))
}
