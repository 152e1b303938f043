package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"pulse-tools/pulsetools/config"
	"pulse-tools/pulsetools/metrics"
	"pulse-tools/pulsetools/network"
	"pulse-tools/pulsetools/render"
	"pulse-tools/pulsetools/terminal"

	"github.com/google/subcommands"
)

type watchCmd struct {
	source    string
	inputFile string
	mode      string
	policy    string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "Redraw device tracks every time a snapshot changes." }
func (*watchCmd) Usage() string {
	return `watch [-source file|nats|valkey] [-input <file>] [-mode merged|device]
	Subscribe to location snapshots and recompute the view on every change.
	Metrics are served on /metrics.
  `
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", fileS, "snapshot source (file, nats, valkey)")
	f.StringVar(&c.inputFile, "input", "", "snapshot file for the file source")
	f.StringVar(&c.mode, "mode", "merged", "merged or device")
	f.StringVar(&c.policy, "policy", "", "segment coloring (destination, origin)")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)
	logger := args[1].(*slog.Logger)

	mode, err := render.ParseMode(c.mode)
	if err != nil {
		terminal.Error(err, "Invalid mode")
		return subcommands.ExitUsageError
	}
	policy, err := colorPolicy(c.policy, cfg)
	if err != nil {
		terminal.Error(err, "Invalid color policy")
		return subcommands.ExitUsageError
	}

	src, cl, err := newSource(c.source, c.inputFile, cfg, logger)
	if err != nil {
		terminal.Error(err, "Failed to connect to snapshot source")
		return subcommands.ExitFailure
	}
	defer closeSource(cl, logger)

	go func() {
		logger.Info("serving metrics", "port", cfg.HTTPPort)
		if err := metrics.Serve(ctx, cfg.HTTPPort); err != nil {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	p := render.NewPipeline(mode, policy, logger)
	err = p.Watch(ctx, src, func(v *render.View) {
		counts := v.SegmentsByCategory()
		summary := ""
		for _, cat := range network.Categories() {
			if n := counts[cat]; n > 0 {
				summary += fmt.Sprintf(" %s=%d", terminal.Highlight(cat, cat.String()), n)
			}
		}
		terminal.Info("%d locations, %d tracks, %d segments%s", v.Len(), len(v.Tracks), len(v.Segments), summary)
	})
	if err != nil {
		terminal.Error(err, "Failed to watch snapshots")
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
