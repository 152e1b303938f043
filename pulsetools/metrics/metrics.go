package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pipeline and view metrics, all in the pulse namespace
var (
	SnapshotsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pulse",
		Subsystem: "pipeline",
		Name:      "snapshots_processed_total",
		Help:      "Total snapshots turned into a new view",
	})

	SnapshotsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pulse",
		Subsystem: "pipeline",
		Name:      "snapshots_rejected_total",
		Help:      "Total malformed snapshots, the previous view was kept",
	})

	RecordsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pulse",
		Subsystem: "pipeline",
		Name:      "records_dropped_total",
		Help:      "Total raw records discarded for missing or invalid coordinates",
	})

	RecomputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pulse",
		Subsystem: "pipeline",
		Name:      "recompute_duration_seconds",
		Help:      "Duration of a full snapshot recomputation",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	ViewPoints = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pulse",
		Subsystem: "view",
		Name:      "points",
		Help:      "Points in the current view",
	})

	ViewTracks = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pulse",
		Subsystem: "view",
		Name:      "tracks",
		Help:      "Tracks in the current view",
	})

	ViewSegments = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pulse",
		Subsystem: "view",
		Name:      "segments",
		Help:      "Segments in the current view by network category",
	}, []string{"category"})
)

// Handler returns the Prometheus /metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on the given port until ctx is done
func Serve(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
