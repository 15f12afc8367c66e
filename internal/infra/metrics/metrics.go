package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// Metrics holds the catalog counters. Each instance registers on its own Registerer so
// tests can use a fresh registry.
type Metrics struct {
	// ProductsLoaded counts products read from the data directory.
	ProductsLoaded prometheus.Counter

	// RecordsDropped counts malformed records skipped during load, by record kind.
	RecordsDropped *prometheus.CounterVec

	// ReviewsSubmitted counts reviews accepted by the repository.
	ReviewsSubmitted prometheus.Counter

	// ReportsWritten counts per-product report files, by outcome.
	ReportsWritten *prometheus.CounterVec

	// SnapshotOps counts dump and restore operations, by operation and outcome.
	SnapshotOps *prometheus.CounterVec
}

const (
	RecordProduct = "product"
	RecordReview  = "review"

	OpDump    = "dump"
	OpRestore = "restore"

	StatusOK    = "ok"
	StatusError = "error"
)

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ProductsLoaded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_loaded_total",
			Help:      "Total number of products loaded from text records",
		}),
		RecordsDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Total number of malformed records skipped while loading",
		}, []string{"record"}),
		ReviewsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_submitted_total",
			Help:      "Total number of reviews accepted by the repository",
		}),
		ReportsWritten: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_written_total",
			Help:      "Total number of product report files written",
		}, []string{"status"}),
		SnapshotOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_operations_total",
			Help:      "Total number of snapshot dump and restore operations",
		}, []string{"operation", "status"}),
	}
}

// NewNop returns counters bound to a private registry that nothing gathers.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func Status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}
