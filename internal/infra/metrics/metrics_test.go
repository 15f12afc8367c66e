//go:build unit

package metrics_test

import (
	"errors"
	"testing"

	"product-catalog/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Registered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.RecordsDropped.WithLabelValues(metrics.RecordProduct)
	m.ReportsWritten.WithLabelValues(metrics.StatusOK)
	m.SnapshotOps.WithLabelValues(metrics.OpDump, metrics.StatusOK)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}

	for _, name := range []string{
		"catalog_products_loaded_total",
		"catalog_records_dropped_total",
		"catalog_reviews_submitted_total",
		"catalog_reports_written_total",
		"catalog_snapshot_operations_total",
	} {
		assert.True(t, names[name], "expected metric %q to be registered", name)
	}
}

func TestMetrics_Counting(t *testing.T) {
	m := metrics.NewNop()

	m.ReviewsSubmitted.Inc()
	m.ReviewsSubmitted.Inc()
	m.SnapshotOps.WithLabelValues(metrics.OpRestore, metrics.Status(errors.New("boom"))).Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReviewsSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotOps.WithLabelValues(metrics.OpRestore, metrics.StatusError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SnapshotOps.WithLabelValues(metrics.OpRestore, metrics.StatusOK)))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New(prometheus.NewRegistry())
		metrics.New(prometheus.NewRegistry())
	})
}
