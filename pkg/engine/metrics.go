package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aggregationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facet_aggregations_total",
		Help: "Number of facet aggregation requests handled",
	})
	aggregationsDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facet_aggregations_degraded_total",
		Help: "Number of aggregations degraded to an empty response",
	})
	unknownAggregationType = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facet_unknown_aggregation_type_total",
		Help: "Number of facets dropped for an unregistered aggregation type",
	})
	aggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "facet_aggregation_duration_seconds",
		Help:    "Wall time of facet aggregation requests",
		Buckets: prometheus.DefBuckets,
	})
)
