package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"pulse-tools/pulsetools/config"
	"pulse-tools/pulsetools/logging"
	"pulse-tools/pulsetools/terminal"

	"github.com/google/subcommands"
)

func main() {

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&renderCmd{}, "")
	subcommands.Register(&selectCmd{}, "")
	subcommands.Register(&drawCmd{}, "")
	subcommands.Register(&watchCmd{}, "")
	subcommands.Register(&publishCmd{}, "")

	cfg, err := config.Load()
	if err != nil {
		terminal.Error(err, "Failed to load config")
		os.Exit(2)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := subcommands.Execute(ctx, cfg, logger)
	stop()
	os.Exit(int(status))
}
