// Package metrics holds the Prometheus instruments for fetch and compute.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeConnection  = "connection"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

type Metrics struct {
	FetchTotal   *prometheus.CounterVec // labels: outcome
	FetchDur     prometheus.Histogram
	ComputeDur   prometheus.Histogram
	FramesTotal  prometheus.Counter
	ComputeFails prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics registers the instruments on reg. A nil reg gets a fresh
// private registry so tests and multiple servers never collide.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "candlescope_fetch_total",
			Help: "Candle fetches by outcome",
		}, []string{"outcome"}),
		FetchDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "candlescope_fetch_duration_seconds",
			Help:    "Time spent fetching candles from the exchange",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "candlescope_compute_duration_seconds",
			Help:    "Time spent computing indicators",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		FramesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "candlescope_frames_total",
			Help: "Total indicator frames produced",
		}),
		ComputeFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "candlescope_compute_failures_total",
			Help: "Indicator computations that failed",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.FetchTotal,
		m.FetchDur,
		m.ComputeDur,
		m.FramesTotal,
		m.ComputeFails,
	)
	return m
}

// CountFetch counts a request outcome without a duration sample, for
// requests rejected before any fetch.
func (m *Metrics) CountFetch(outcome string) {
	m.FetchTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveFetch(outcome string, d time.Duration) {
	m.CountFetch(outcome)
	m.FetchDur.Observe(d.Seconds())
}

func (m *Metrics) ObserveCompute(frames int, d time.Duration, err error) {
	m.ComputeDur.Observe(d.Seconds())
	if err != nil {
		m.ComputeFails.Inc()
		return
	}
	m.FramesTotal.Add(float64(frames))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
