package main

import (
	"context"
	"flag"
	"log/slog"
	"pulse-tools/pulsetools/config"
	"pulse-tools/pulsetools/export"
	"pulse-tools/pulsetools/render"
	"pulse-tools/pulsetools/terminal"

	"github.com/google/subcommands"
)

type renderCmd struct {
	inputFile  string
	mode       string
	format     string
	outputFile string
	policy     string
}

func (*renderCmd) Name() string     { return "render" }
func (*renderCmd) Synopsis() string { return "Render device tracks from a location snapshot." }
func (*renderCmd) Usage() string {
	return `render [-input <file>] [-mode merged|device] [-format <format>] [-output <file>]
	Draw every location of a snapshot as network colored segments.
  `
}

func (c *renderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputFile, "input", "", "snapshot file, stdin if empty")
	f.StringVar(&c.mode, "mode", "merged", "merged or device")
	f.StringVar(&c.format, "format", "text", "output format (text, json, yaml, csv, geojson, gpx)")
	f.StringVar(&c.outputFile, "output", "", "output file")
	f.StringVar(&c.policy, "policy", "", "segment coloring (destination, origin)")
}

func (c *renderCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)
	logger := args[1].(*slog.Logger)

	// validate parameters
	mode, err := render.ParseMode(c.mode)
	if err != nil {
		terminal.Error(err, "Invalid mode")
		return subcommands.ExitUsageError
	}
	format, err := export.ParseFormat(c.format)
	if err != nil {
		terminal.Error(err, "Invalid format")
		return subcommands.ExitUsageError
	}
	policy, err := colorPolicy(c.policy, cfg)
	if err != nil {
		terminal.Error(err, "Invalid color policy")
		return subcommands.ExitUsageError
	}

	o := terminal.NewOperation("Reading snapshot")
	points, err := loadPoints(c.inputFile, logger)
	if err != nil {
		o.Error(err, "Failed to read snapshot")
		return subcommands.ExitFailure
	}
	o.Success("Snapshot read (%d locations)", len(points))

	if len(points) == 0 {
		logger.Info("no location data received")
	}
	v := render.Build(points, mode, policy)

	return writeView(v, format, c.outputFile)
}

func writeView(v *render.View, format export.Format, outputFile string) subcommands.ExitStatus {
	w, tty, err := openOutput(outputFile)
	if err != nil {
		terminal.Error(err, "Could not open file '%s'", outputFile)
		return subcommands.ExitFailure
	}
	defer w.Close()

	var op *terminal.Operation
	if !isStdio(outputFile) {
		op = terminal.NewOperation("Exporting view to '%s' in %s format", outputFile, format)
	}

	if err := export.Write(w, format, v, export.Options{Color: tty}); err != nil {
		if op != nil {
			op.Error(err, "Failed to export view")
		} else {
			terminal.Error(err, "Failed to export view")
		}
		return subcommands.ExitFailure
	}

	if op != nil {
		op.Success("View exported to %s", outputFile)
	}
	return subcommands.ExitSuccess
}
