// Package metrics provides the centralized Prometheus metrics registry
// for the scroll pager. All metrics are defined in their respective
// packages (pager, controller, pagecache) to maintain modularity and
// avoid circular dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the scroll pager.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Loader Metrics (pkg/pager):
//   - scrollpager_fetches_total{result} (Counter): Page fetches by result (success, error)
//   - scrollpager_fetch_duration_seconds (Histogram): Successful fetch duration
//   - scrollpager_source_exhausted_total (Counter): Short pages marking end-of-list
//   - scrollpager_dropped_emissions_total{channel} (Counter): Emissions dropped (items, states)
//
// Controller Metrics (pkg/controller):
//   - scrollpager_items_inserted_total (Counter): Items inserted into the sequence
//   - scrollpager_footer_transitions_total{state} (Counter): Loading states applied to the footer
//   - scrollpager_reloads_total (Counter): Clear-and-reload operations
//   - scrollpager_rejected_mutations_total{op} (Counter): Silently rejected mutations (add, insert, remove)
//
// Page Cache Metrics (pkg/pagecache):
//   - scrollpager_cache_hits_total (Counter): Pages served from Redis
//   - scrollpager_cache_misses_total (Counter): Pages fetched from the source
//   - scrollpager_cache_errors_total{operation} (Counter): Cache operation errors (get, set)
//
// Example Prometheus Queries:
//
//   # Fetch Error Rate
//   rate(scrollpager_fetches_total{result="error"}[5m]) /
//   rate(scrollpager_fetches_total[5m])
//
//   # Cache Hit Rate
//   rate(scrollpager_cache_hits_total[5m]) /
//   (rate(scrollpager_cache_hits_total[5m]) + rate(scrollpager_cache_misses_total[5m]))
//
//   # P95 Fetch Latency
//   histogram_quantile(0.95, rate(scrollpager_fetch_duration_seconds_bucket[5m]))
//
//   # Dropped Emissions (should stay at zero in healthy operation)
//   rate(scrollpager_dropped_emissions_total[5m])
