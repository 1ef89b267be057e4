package atom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/gentry/pkg/types"
)

// Metrics counts documents read and written. A nil *Metrics records nothing.
type Metrics struct {
	EntriesDecoded     *prometheus.CounterVec
	EntriesEncoded     *prometheus.CounterVec
	UndeclaredElements *prometheus.CounterVec
}

// NewMetrics creates the codec metrics and registers them with reg when reg
// is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EntriesDecoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gentry",
				Subsystem: "atom",
				Name:      "entries_decoded_total",
				Help:      "Total number of entry documents decoded",
			},
			[]string{"kind"},
		),
		EntriesEncoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gentry",
				Subsystem: "atom",
				Name:      "entries_encoded_total",
				Help:      "Total number of entry documents encoded",
			},
			[]string{"kind"},
		),
		UndeclaredElements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gentry",
				Subsystem: "atom",
				Name:      "undeclared_elements_total",
				Help:      "Undeclared extension elements met while decoding, by policy",
			},
			[]string{"kind", "policy"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.EntriesDecoded, m.EntriesEncoded, m.UndeclaredElements)
	}
	return m
}

func (m *Metrics) decoded(kind types.EntryType) {
	if m == nil {
		return
	}
	m.EntriesDecoded.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) encoded(kind types.EntryType) {
	if m == nil {
		return
	}
	m.EntriesEncoded.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) undeclared(kind types.EntryType, p Policy) {
	if m == nil {
		return
	}
	m.UndeclaredElements.WithLabelValues(string(kind), p.String()).Inc()
}
