package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hits counts response cache hits by operation key.
	Hits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bff_cache_hits_total",
			Help: "Total number of response cache hits",
		},
		[]string{"operation"},
	)

	// Misses counts response cache misses by operation key.
	Misses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bff_cache_misses_total",
			Help: "Total number of response cache misses",
		},
		[]string{"operation"},
	)
)
