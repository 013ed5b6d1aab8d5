package storage

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for the load and save counters.
const (
	resultOK      = "ok"
	resultMissing = "missing"
	resultCorrupt = "corrupt"
	resultInvalid = "invalid"
	resultError   = "error"
)

// Metrics counts store outcomes so that failed writes are observable.
type Metrics struct {
	Loads   *prometheus.CounterVec
	Saves   *prometheus.CounterVec
	Entries prometheus.Gauge
}

// NewMetrics creates the store collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diary",
			Subsystem: "store",
			Name:      "loads_total",
			Help:      "Document loads by result (ok, missing, corrupt, error).",
		}, []string{"result"}),
		Saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diary",
			Subsystem: "store",
			Name:      "saves_total",
			Help:      "Document saves by result (ok, invalid, error).",
		}, []string{"result"}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "diary",
			Subsystem: "store",
			Name:      "entries",
			Help:      "Entries in the document after the last successful load or save.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Loads, m.Saves, m.Entries)
	}
	return m
}

func (m *Metrics) load(result string, n int) {
	if m == nil {
		return
	}
	m.Loads.WithLabelValues(result).Inc()
	if result == resultOK || result == resultMissing {
		m.Entries.Set(float64(n))
	}
}

func (m *Metrics) save(result string, n int) {
	if m == nil {
		return
	}
	m.Saves.WithLabelValues(result).Inc()
	if result == resultOK {
		m.Entries.Set(float64(n))
	}
}
