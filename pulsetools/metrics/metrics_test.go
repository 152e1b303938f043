package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"pulse-tools/pulsetools/metrics"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	require := require.New(t)

	before := testutil.ToFloat64(metrics.RecordsDropped)
	metrics.RecordsDropped.Add(3)
	require.Equal(before+3, testutil.ToFloat64(metrics.RecordsDropped))

	metrics.ViewSegments.WithLabelValues("5g").Set(4)
	require.Equal(4.0, testutil.ToFloat64(metrics.ViewSegments.WithLabelValues("5g")))
}

func TestHandler(t *testing.T) {
	require := require.New(t)

	metrics.SnapshotsProcessed.Inc()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(http.StatusOK, rec.Code)
	require.Contains(rec.Body.String(), "pulse_pipeline_snapshots_processed_total")
}
