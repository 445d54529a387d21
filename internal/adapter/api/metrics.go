package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// Request outcomes used as the "outcome" metric label.
const (
	OutcomeSuccess        = "success"
	OutcomePending        = "pending"
	OutcomeError          = "error"
	OutcomeForcedLogout   = "forced_logout"
	OutcomeTransportError = "transport_error"
)

// Metrics instruments backend calls.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg when non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ecowallet",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Backend requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ecowallet",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

// Requests returns the counter for the given labels.
func (m *Metrics) Requests(operation, outcome string) prometheus.Counter {
	return m.requests.WithLabelValues(operation, outcome)
}

func (m *Metrics) observe(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func outcomeOf(resp *Response, err error) string {
	switch {
	case err != nil:
		return OutcomeTransportError
	case resp.IsError():
		if apiErr := resp.APIError(); apiErr.ForcesLogout() {
			return OutcomeForcedLogout
		}
		return OutcomeError
	case resp.Status == domain.StatusPending:
		return OutcomePending
	default:
		return OutcomeSuccess
	}
}
