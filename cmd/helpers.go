package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log/slog"
	"os"
	"pulse-tools/pulsetools/config"
	"pulse-tools/pulsetools/snapshot"
	"pulse-tools/pulsetools/source"
	"pulse-tools/pulsetools/terminal"
	"pulse-tools/pulsetools/track"
)

const (
	fileS   = "file"
	natsS   = "nats"
	valkeyS = "valkey"
)

// stdin and stdout are selected with "-"
const stdio = "-"

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout when path is empty, a new file otherwise.
// The boolean tells whether the writer is an interactive terminal.
func openOutput(path string) (io.WriteCloser, bool, error) {
	if isStdio(path) {
		return nopCloser{os.Stdout}, terminal.IsTerminal(os.Stdout), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, false, err
	}
	return f, false, nil
}

// isStdio returns true when path selects stdin or stdout
func isStdio(path string) bool {
	return path == "" || path == stdio
}

func readInput(path string) ([]byte, error) {
	if isStdio(path) {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(path)
}

// loadPoints parses and normalizes a snapshot file
func loadPoints(path string, logger *slog.Logger) ([]track.LocationPoint, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	s, err := snapshot.Parse(data)
	if err != nil {
		return nil, err
	}

	res := snapshot.Normalize(s)
	if res.Dropped > 0 {
		logger.Warn("records dropped", "count", res.Dropped)
	}
	return res.Points, nil
}

func colorPolicy(flagValue string, cfg *config.Config) (track.ColorPolicy, error) {
	if flagValue != "" {
		return track.ParseColorPolicy(flagValue)
	}
	return track.ParseColorPolicy(cfg.ColorPolicy)
}

// closer is implemented by the sources holding a connection
type closer interface {
	Close() error
}

type valkeyCloser struct{ *source.ValkeySource }

func (c valkeyCloser) Close() error {
	c.ValkeySource.Close()
	return nil
}

// newSource builds the snapshot source of the given kind
func newSource(kind, input string, cfg *config.Config, logger *slog.Logger) (source.SnapshotSource, closer, error) {
	switch kind {
	case fileS:
		if input == "" {
			return nil, nil, fmt.Errorf("file source needs an input file")
		}
		return source.NewFileSource(input, cfg.PollInterval(), logger), nil, nil
	case natsS:
		src, err := source.NewNATSSource(cfg.NATSURL, cfg.NATSSubject, logger)
		if err != nil {
			return nil, nil, err
		}
		return src, src, nil
	case valkeyS:
		src, err := source.NewValkeySource(cfg.ValkeyAddr, cfg.ValkeyKey, cfg.ValkeyChannel, logger)
		if err != nil {
			return nil, nil, err
		}
		return src, valkeyCloser{src}, nil
	}
	return nil, nil, fmt.Errorf("unknown source '%s'", kind)
}

func closeSource(c closer, logger *slog.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logger.Warn("failed to close source", "error", err)
	}
}
