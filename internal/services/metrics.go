// Package services – Prometheus instrumentation for the quote cache.
//
// Lookup outcomes use a single counter vec with a bounded "result" label:
//
//	hit      – fresh entry served from the cache
//	miss     – no entry for the key
//	expired  – entry found past its TTL (lazily deleted)
//	error    – backing store failure, degraded to a miss
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_cache_lookups_total",
			Help: "Total quote cache lookups by outcome.",
		},
		[]string{"result"},
	)

	cacheStores = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_cache_stores_total",
			Help: "Total quote cache writes by outcome.",
		},
		[]string{"result"},
	)

	cachePurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quote_cache_purged_entries_total",
			Help: "Total expired quote cache entries removed by bulk purges.",
		},
	)
)

func init() {
	prometheus.MustRegister(cacheLookups, cacheStores, cachePurged)
}
