package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"pulse-tools/pulsetools/config"
	"pulse-tools/pulsetools/export"
	"pulse-tools/pulsetools/handoff"
	"pulse-tools/pulsetools/render"
	"pulse-tools/pulsetools/terminal"
	"pulse-tools/pulsetools/track"

	"github.com/google/subcommands"
)

type drawCmd struct {
	selectionFile string
	format        string
	outputFile    string
	policy        string
}

func (*drawCmd) Name() string     { return "draw" }
func (*drawCmd) Synopsis() string { return "Draw a path from selected locations." }
func (*drawCmd) Usage() string {
	return `draw [-selection <file>] [-format <format>] [-output <file>]
	Draw the locations handed off by the select command, in selection order.
  `
}

func (c *drawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.selectionFile, "selection", "", "hand-off file written by select, stdin if empty")
	f.StringVar(&c.format, "format", "text", "output format (text, json, yaml, csv, geojson, gpx)")
	f.StringVar(&c.outputFile, "output", "", "output file")
	f.StringVar(&c.policy, "policy", "", "segment coloring (destination, origin)")
}

func (c *drawCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)
	logger := args[1].(*slog.Logger)

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

	points, err := readSelection(c.selectionFile)
	if err != nil {
		terminal.Error(err, "Failed to read selection")
		return subcommands.ExitFailure
	}

	if len(points) == 0 {
		logger.Info("no location data received")
	}

	return writeView(render.FromPoints(points, policy), format, c.outputFile)
}

func readSelection(path string) ([]track.LocationPoint, error) {
	if isStdio(path) {
		return handoff.Decode(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return handoff.Decode(f)
}
