package listclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes recorded by Metrics.
const (
	OutcomeOK        = "ok"
	OutcomeCached    = "cached"
	OutcomeHTTP      = "http_error"
	OutcomeDecode    = "decode_error"
	OutcomeTransport = "transport_error"
)

// Metrics holds Prometheus metrics for list searches. A nil *Metrics
// records nothing.
type Metrics struct {
	requests *prometheus.CounterVec   // by outcome
	duration *prometheus.HistogramVec // by list_id
	results  prometheus.Histogram
}

// NewMetrics creates list client metrics and registers them with reg.
// A nil reg disables metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refselect",
			Subsystem: "listclient",
			Name:      "requests_total",
			Help:      "Total number of controlled list searches by outcome",
		}, []string{"outcome"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "refselect",
			Subsystem: "listclient",
			Name:      "request_duration_seconds",
			Help:      "Controlled list search round trip in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"list_id"}),

		results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "refselect",
			Subsystem: "listclient",
			Name:      "results_per_page",
			Help:      "Number of options returned per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
		}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration, m.results} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordRequest(listID, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	if outcome != OutcomeCached {
		m.duration.WithLabelValues(listID).Observe(took.Seconds())
	}
}

func (m *Metrics) recordResults(n int) {
	if m == nil {
		return
	}
	m.results.Observe(float64(n))
}
