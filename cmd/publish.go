package main

import (
	"context"
	"flag"
	"log/slog"
	"pulse-tools/pulsetools/config"
	"pulse-tools/pulsetools/snapshot"
	"pulse-tools/pulsetools/source"
	"pulse-tools/pulsetools/terminal"

	"github.com/google/subcommands"
)

type publishCmd struct {
	source    string
	inputFile string
	serve     bool
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "Publish a location snapshot to NATS or Valkey." }
func (*publishCmd) Usage() string {
	return `publish -source nats|valkey -input <file> [-serve]
	Push a snapshot to watchers. With -serve, NATS fetch requests are
	answered with the file until interrupted.
  `
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", natsS, "snapshot source (nats, valkey)")
	f.StringVar(&c.inputFile, "input", "", "snapshot file, stdin if empty")
	f.BoolVar(&c.serve, "serve", false, "keep answering NATS fetch requests")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)
	logger := args[1].(*slog.Logger)

	if c.source != natsS && c.source != valkeyS {
		terminal.Error(nil, "Invalid source '%s'", c.source)
		return subcommands.ExitUsageError
	}

	data, err := readInput(c.inputFile)
	if err != nil {
		terminal.Error(err, "Failed to read snapshot")
		return subcommands.ExitFailure
	}

	// refuse to push something watchers would reject
	s, err := snapshot.Parse(data)
	if err != nil {
		terminal.Error(err, "Refusing to publish snapshot")
		return subcommands.ExitFailure
	}

	src, cl, err := newSource(c.source, "", cfg, logger)
	if err != nil {
		terminal.Error(err, "Failed to connect to %s", c.source)
		return subcommands.ExitFailure
	}
	defer closeSource(cl, logger)

	o := terminal.NewOperation("Publishing snapshot to %s", c.source)
	switch src := src.(type) {
	case *source.NATSSource:
		err = src.Publish(data)
	case *source.ValkeySource:
		err = src.Publish(ctx, data)
	}
	if err != nil {
		o.Error(err, "Failed to publish snapshot")
		return subcommands.ExitFailure
	}
	o.Success("Published snapshot with %d records", s.Len())

	if c.serve {
		nats, ok := src.(*source.NATSSource)
		if !ok {
			terminal.Warn("Only the NATS source answers fetch requests")
			return subcommands.ExitSuccess
		}

		terminal.Info("Answering fetch requests on '%s'", nats.FetchSubject())
		err := nats.Serve(ctx, func() ([]byte, error) { return data, nil })
		if err != nil {
			terminal.Error(err, "Failed to serve snapshot")
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
