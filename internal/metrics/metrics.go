package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the launch pipeline and the
// outbound Graph API traffic.
type Metrics struct {
	Launches       *prometheus.CounterVec
	LaunchDuration *prometheus.HistogramVec
	StageFailures  *prometheus.CounterVec
	GraphRequests  *prometheus.CounterVec
	GraphLatency   *prometheus.HistogramVec
	Rollbacks      *prometheus.CounterVec
	RateLimitHits  *prometheus.CounterVec
}

// New registers all collectors on reg. Pass prometheus.DefaultRegisterer in
// main and a fresh registry in tests.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Launches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "launches_total",
			Help:      "Campaign launch attempts by outcome.",
		}, []string{"outcome"}),
		LaunchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "launch_duration_seconds",
			Help:      "End-to-end campaign launch duration.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"outcome"}),
		StageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Launch failures by pipeline stage.",
		}, []string{"stage"}),
		GraphRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_requests_total",
			Help:      "Graph API calls by operation and HTTP status. Transport failures count as status \"error\".",
		}, []string{"op", "status"}),
		GraphLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_request_duration_seconds",
			Help:      "Graph API call duration by operation.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"op"}),
		Rollbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollbacks_total",
			Help:      "Compensating campaign deletes by result.",
		}, []string{"result"}),
		RateLimitHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"path"}),
	}
}

func (m *Metrics) RecordLaunch(outcome string, d time.Duration) {
	m.Launches.WithLabelValues(outcome).Inc()
	m.LaunchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (m *Metrics) RecordStageFailure(stage string) {
	m.StageFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) RecordGraphRequest(op string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.GraphRequests.WithLabelValues(op, label).Inc()
	m.GraphLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) RecordRollback(result string) {
	m.Rollbacks.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordRateLimitHit(path string) {
	m.RateLimitHits.WithLabelValues(path).Inc()
}

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
