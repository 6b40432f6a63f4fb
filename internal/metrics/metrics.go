// Package metrics holds Prometheus instruments that are used across the
// module.  All collectors are registered with the global registry, so
// mounting promhttp.Handler() in main.go is enough to expose them on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Resolve outcomes used as the "outcome" label of ConfigResolveTotal.
const (
	OutcomeSpecific = "specific"
	OutcomeLower    = "lower"
	OutcomeFallback = "fallback"
	OutcomeNotFound = "not_found"
)

var (
	ConfigResolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "config_resolve_total",
			Help: "Config file resolutions partitioned by outcome.",
		}, []string{"outcome"})

	ConfigDocumentLoadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "config_document_loads_total",
			Help: "Cumulative number of config documents read from disk.",
		})

	ConfigLookupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "config_lookup_total",
			Help: "Config key lookups partitioned by expected kind.",
		}, []string{"kind"})

	ConfigTypeMismatchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "config_type_mismatch_total",
			Help: "Cumulative number of config lookups rejected for a kind mismatch.",
		})
)

func init() {
	prometheus.MustRegister(
		ConfigResolveTotal,
		ConfigDocumentLoadsTotal,
		ConfigLookupTotal,
		ConfigTypeMismatchTotal,
	)
}
