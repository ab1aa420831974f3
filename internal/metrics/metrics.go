package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/match-predictor/internal/platform/resilience"
)

const namespace = "match_predictor"

// Collector holds the service's Prometheus instruments.
type Collector struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	predictions    *prometheus.CounterVec
	authOutcomes   *prometheus.CounterVec
	accountBreaker *prometheus.GaugeVec
}

// NewCollector creates the instruments and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_recorded_total",
			Help:      "Stored predictions split by whether a session user was attached.",
		}, []string{"session"}),
		authOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_resolutions_total",
			Help:      "Bearer token resolution outcomes.",
		}, []string{"outcome"}),
		accountBreaker: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "account_circuit_state",
			Help:      "1 for the current account service circuit breaker state, 0 otherwise.",
		}, []string{"state"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.predictions,
		c.authOutcomes,
		c.accountBreaker,
	)
	c.SetCircuitState(resilience.CircuitStateClosed)

	return c
}

// RegisterRuntime adds the Go runtime and process collectors to reg.
func RegisterRuntime(reg prometheus.Registerer) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) PredictionRecorded(anonymous bool) {
	session := "authenticated"
	if anonymous {
		session = "anonymous"
	}
	c.predictions.WithLabelValues(session).Inc()
}

// RecordSessionOutcome counts one of "anonymous", "authenticated", "rejected" or "unavailable".
func (c *Collector) RecordSessionOutcome(outcome string) {
	c.authOutcomes.WithLabelValues(outcome).Inc()
}

func (c *Collector) SetCircuitState(state resilience.CircuitState) {
	for _, s := range []resilience.CircuitState{
		resilience.CircuitStateClosed,
		resilience.CircuitStateOpen,
		resilience.CircuitStateHalfOpen,
	} {
		value := 0.0
		if s == state {
			value = 1
		}
		c.accountBreaker.WithLabelValues(string(s)).Set(value)
	}
}

// Handler serves the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
