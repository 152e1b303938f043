package render

import (
	"context"
	"fmt"
	"log/slog"
	"pulse-tools/pulsetools/metrics"
	"pulse-tools/pulsetools/network"
	"pulse-tools/pulsetools/snapshot"
	"pulse-tools/pulsetools/source"
	"pulse-tools/pulsetools/track"
	"sync"
	"sync/atomic"
	"time"
)

// Pipeline turns raw snapshots into views. The last good view stays
// current when a snapshot cannot be parsed.
type Pipeline struct {
	mode    Mode
	policy  track.ColorPolicy
	logger  *slog.Logger
	current atomic.Pointer[View]
}

// NewPipeline creates a pipeline with an empty current view
func NewPipeline(mode Mode, policy track.ColorPolicy, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{mode: mode, policy: policy, logger: logger}
	p.current.Store(newView(nil, policy))
	return p
}

// Current returns the last successfully computed view
func (p *Pipeline) Current() *View {
	return p.current.Load()
}

// Recompute parses the snapshot and replaces the current view
func (p *Pipeline) Recompute(raw []byte) (*View, error) {
	start := time.Now()

	snap, err := snapshot.Parse(raw)
	if err != nil {
		metrics.SnapshotsRejected.Inc()
		p.logger.Error("snapshot rejected, keeping previous view", "error", err)
		return p.Current(), err
	}

	res := snapshot.Normalize(snap)
	if res.Dropped > 0 {
		metrics.RecordsDropped.Add(float64(res.Dropped))
		p.logger.Warn("records dropped", "count", res.Dropped)
	}
	if len(res.Points) == 0 {
		p.logger.Info("no location data received")
	}

	v := Build(res.Points, p.mode, p.policy)
	v.Dropped = res.Dropped
	p.current.Store(v)

	metrics.SnapshotsProcessed.Inc()
	metrics.RecomputeDuration.Observe(time.Since(start).Seconds())
	observe(v)

	p.logger.Debug("view recomputed",
		"records", snap.Len(),
		"points", v.Len(),
		"tracks", len(v.Tracks),
		"segments", len(v.Segments),
		"elapsed", time.Since(start))

	return v, nil
}

// Watch recomputes the view from the latest snapshot of src, then again for
// every snapshot it delivers, passing each view to onView. It blocks until
// ctx is done.
func (p *Pipeline) Watch(ctx context.Context, src source.SnapshotSource, onView func(*View)) error {
	var (
		mu        sync.Mutex
		delivered bool
	)
	apply := func(raw []byte, initial bool) {
		mu.Lock()
		defer mu.Unlock()

		// a delivery already carries a newer snapshot than the initial fetch
		if initial && delivered {
			return
		}
		delivered = true

		v, err := p.Recompute(raw)
		if err != nil {
			return
		}
		if onView != nil {
			onView(v)
		}
	}

	sub, err := src.Subscribe(ctx, func(raw []byte) { apply(raw, false) })
	if err != nil {
		return fmt.Errorf("subscribe to snapshots: %w", err)
	}

	raw, err := src.Fetch(ctx)
	if err != nil {
		p.logger.Warn("initial snapshot fetch failed, waiting for updates", "error", err)
	} else {
		apply(raw, true)
	}

	<-ctx.Done()
	if err := sub.Unsubscribe(); err != nil {
		p.logger.Warn("unsubscribe failed", "error", err)
	}
	return nil
}

func observe(v *View) {
	metrics.ViewPoints.Set(float64(v.Len()))
	metrics.ViewTracks.Set(float64(len(v.Tracks)))

	counts := v.SegmentsByCategory()
	for _, c := range network.Categories() {
		metrics.ViewSegments.WithLabelValues(c.String()).Set(float64(counts[c]))
	}
}
