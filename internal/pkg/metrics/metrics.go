// Package metrics holds the Prometheus collectors for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector the service records. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	PostsCreated      *prometheus.CounterVec
	IdentifierSearch  *prometheus.CounterVec
	ClaimsRecorded    prometheus.Counter
	ClaimsDuplicate   prometheus.Counter
	ClaimsConfirmed   prometheus.Counter
	ClaimsRejected    prometheus.Counter
	ResolutionMissing prometheus.Counter
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lostfound_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lostfound_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		PostsCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lostfound_posts_created_total",
				Help: "Posts created by initial status",
			},
			[]string{"status"},
		),
		IdentifierSearch: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lostfound_identifier_searches_total",
				Help: "Identifier lookups by device type and outcome",
			},
			[]string{"type", "result"},
		),
		ClaimsRecorded: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_claims_recorded_total",
			Help: "Found interactions stored",
		}),
		ClaimsDuplicate: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_claims_duplicate_total",
			Help: "Found interactions rejected as duplicates",
		}),
		ClaimsConfirmed: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_claims_confirmed_total",
			Help: "Claim confirmations",
		}),
		ClaimsRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_claims_rejected_total",
			Help: "Claims rejected by an admin",
		}),
		ResolutionMissing: f.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_claim_resolution_missing_total",
			Help: "Confirmations where the linked post could not be resolved",
		}),
	}
}

func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(seconds)
}

func (m *Metrics) PostCreated(status string) {
	if m == nil {
		return
	}
	m.PostsCreated.WithLabelValues(status).Inc()
}

func (m *Metrics) Search(deviceType string, matched bool) {
	if m == nil {
		return
	}
	result := "miss"
	if matched {
		result = "hit"
	}
	m.IdentifierSearch.WithLabelValues(deviceType, result).Inc()
}

func (m *Metrics) ClaimRecorded() {
	if m != nil {
		m.ClaimsRecorded.Inc()
	}
}

func (m *Metrics) ClaimDuplicate() {
	if m != nil {
		m.ClaimsDuplicate.Inc()
	}
}

func (m *Metrics) ClaimConfirmed(postResolved bool) {
	if m == nil {
		return
	}
	m.ClaimsConfirmed.Inc()
	if !postResolved {
		m.ResolutionMissing.Inc()
	}
}

func (m *Metrics) ClaimRejected() {
	if m != nil {
		m.ClaimsRejected.Inc()
	}
}
