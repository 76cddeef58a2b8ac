package geomcache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names.
const (
	MetricCacheHits    = "seatplan_geometry_cache_hits_total"
	MetricCacheMisses  = "seatplan_geometry_cache_misses_total"
	MetricLoads        = "seatplan_geometry_loads_total"
	MetricLoadDuration = "seatplan_geometry_load_duration_seconds"
	MetricCacheEntries = "seatplan_geometry_cache_entries"
)

// Load status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the Prometheus collectors of a Cache. All methods are
// safe for concurrent use and do nothing on a nil receiver.
type Metrics struct {
	hits         prometheus.Counter
	misses       prometheus.Counter
	loads        *prometheus.CounterVec
	loadDuration prometheus.Histogram
	entries      prometheus.Gauge
}

// NewMetrics creates the collectors. They are not registered; call Register.
func NewMetrics() *Metrics {
	return &Metrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricCacheHits,
			Help: "Geometry lookups answered from the cache",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricCacheMisses,
			Help: "Geometry lookups that started a load",
		}),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricLoads,
				Help: "Fetch, parse and flatten runs by status",
			},
			[]string{"status"},
		),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricLoadDuration,
			Help:    "Histogram of drawing load duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricCacheEntries,
			Help: "Flattened drawings held in the cache",
		}),
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns every collector.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.hits, m.misses, m.loads, m.loadDuration, m.entries}
}

func (m *Metrics) hit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *Metrics) load(status string, seconds float64) {
	if m != nil {
		m.loads.WithLabelValues(status).Inc()
		m.loadDuration.Observe(seconds)
	}
}

func (m *Metrics) setEntries(n int) {
	if m != nil {
		m.entries.Set(float64(n))
	}
}
