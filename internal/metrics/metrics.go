package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters for record operations and journal writes,
// gauges for the live departments and employees, and histograms for
// operation and database query durations.
type Metrics struct {
	Operations          *prometheus.CounterVec
	OperationDuration   *prometheus.HistogramVec
	Departments         prometheus.Gauge
	Employees           prometheus.Gauge
	ConsistencyWarnings prometheus.Counter
	ItemsParsed         *prometheus.CounterVec
	JournalWrites       *prometheus.CounterVec
	DBQueryDuration     *prometheus.HistogramVec
}

// Operation statuses used as the "status" label of Operations.
const (
	StatusSuccess  = "success"
	StatusFailure  = "failure"
	StatusNotFound = "not_found"
	StatusNoop     = "noop"
)

// NewMetrics creates a new Metrics instance with the provided Registerer.
// It initializes the counters, gauges and histograms and registers them.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		Operations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_operations_total",
			Help: "Total number of record operations by outcome.",
		}, []string{"operation", "status"}),
		OperationDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_operation_duration_seconds",
			Help:    "Time spent applying a record operation, including the cascade.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8), //nolint:mnd // 10us .. ~160ms
		}, []string{"operation"}),
		Departments: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hestia_departments",
			Help: "Number of departments currently held in memory.",
		}),
		Employees: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hestia_employees",
			Help: "Number of employees currently held in memory.",
		}),
		ConsistencyWarnings: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "hestia_consistency_warnings_total",
			Help: "Total number of index or registry entries that were missing when released.",
		}),
		ItemsParsed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_items_parsed_total",
			Help: "Total number of parsed items",
		}, []string{"type"}),
		JournalWrites: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_journal_writes_total",
			Help: "Total number of change events written to the journal.",
		}, []string{"status"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'save_event'
	}

	metrics.JournalWrites.WithLabelValues(StatusSuccess)
	metrics.JournalWrites.WithLabelValues(StatusFailure)

	return metrics
}
