package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for wordgen_requests_total.
const (
	outcomeOK           = "ok"
	outcomeBadRequest   = "bad_request"
	outcomePrecondition = "precondition"
	outcomeError        = "error"
)

type metrics struct {
	requests  *prometheus.CounterVec
	words     *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// newMetrics registers the service metrics on reg.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordgen_requests_total",
				Help: "Total number of API requests by automaton kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		words: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordgen_words_generated_total",
				Help: "Total number of words generated",
			},
			[]string{"kind"},
		),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wordgen_generate_duration_seconds",
				Help:    "Duration of generation requests",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(m.requests, m.words, m.durations)
	return m
}
