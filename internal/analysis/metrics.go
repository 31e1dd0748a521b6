package analysis

import "github.com/prometheus/client_golang/prometheus"

var (
	unitsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitwall",
		Subsystem: "batch",
		Name:      "units_completed_total",
		Help:      "Number of (session, driver) analysis units completed successfully.",
	})

	unitsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitwall",
		Subsystem: "batch",
		Name:      "units_failed_total",
		Help:      "Number of (session, driver) analysis units that failed or timed out.",
	})

	unitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pitwall",
		Subsystem: "batch",
		Name:      "unit_duration_seconds",
		Help:      "Wall time per analysis unit, including the raw-data fetch.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})
)

func init() {
	prometheus.MustRegister(unitsCompleted, unitsFailed, unitDuration)
}
