// Package metrics defines the Prometheus collectors exported by the tracking service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK       = "ok"
	OutcomeNoData   = "no_data"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Collectors is nil-safe: a nil *Collectors records nothing.
type Collectors struct {
	calls       *prometheus.CounterVec
	reconstruct prometheus.Histogram
	cache       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Collectors {
	f := promauto.With(reg)
	return &Collectors{
		calls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_calls_total",
			Help: "Facade calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		reconstruct: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracking_reconstruct_seconds",
			Help:    "Time spent reconstructing a GlobalState.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		cache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_state_cache_total",
			Help: "State cache lookups by result.",
		}, []string{"result"}),
	}
}

func (c *Collectors) ObserveCall(op, outcome string) {
	if c == nil {
		return
	}
	c.calls.WithLabelValues(op, outcome).Inc()
}

func (c *Collectors) ObserveReconstruct(d time.Duration) {
	if c == nil {
		return
	}
	c.reconstruct.Observe(d.Seconds())
}

func (c *Collectors) ObserveCache(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cache.WithLabelValues(result).Inc()
}

// Handler serves the exposition format for g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
