package upstream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bff_upstream_requests_total",
		Help: "Total upstream request attempts by method, path and outcome",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bff_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by path, retries included",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"path"})

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bff_upstream_retries_total",
		Help: "Total number of upstream retry attempts",
	})

	retryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bff_upstream_retry_exhausted_total",
		Help: "Total number of upstream requests that exhausted the retry budget",
	})
)
