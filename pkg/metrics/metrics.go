// Package metrics exposes the Prometheus HTTP handler for the admin BFF.
// Metrics themselves are defined next to the code they observe
// (pkg/upstream, pkg/cache) and registered via promauto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metric reference
//
// Upstream client (pkg/upstream):
//   - bff_upstream_requests_total{method, path, status} (Counter): attempts
//     by outcome; transport failures use status="transport_error"
//   - bff_upstream_request_duration_seconds{path} (Histogram): duration of
//     the full logical request, retries and backoff included
//   - bff_upstream_retries_total (Counter): retry attempts
//   - bff_upstream_retry_exhausted_total (Counter): requests that spent the
//     whole attempt budget
//
// Response cache (pkg/cache):
//   - bff_cache_hits_total{operation} (Counter)
//   - bff_cache_misses_total{operation} (Counter)
//
// Example queries:
//
//   # cache hit rate per operation
//   sum by (operation) (rate(bff_cache_hits_total[5m])) /
//   (sum by (operation) (rate(bff_cache_hits_total[5m]))
//    + sum by (operation) (rate(bff_cache_misses_total[5m])))
//
//   # p95 upstream latency
//   histogram_quantile(0.95, rate(bff_upstream_request_duration_seconds_bucket[5m]))
