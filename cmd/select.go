package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"pulse-tools/pulsetools/handoff"
	"pulse-tools/pulsetools/selection"
	"pulse-tools/pulsetools/terminal"
	"pulse-tools/pulsetools/track"
	"strings"

	"github.com/google/subcommands"
)

var errAborted = errors.New("selection aborted")

type selectCmd struct {
	inputFile  string
	deviceID   string
	pick       string
	outputFile string
}

func (*selectCmd) Name() string     { return "select" }
func (*selectCmd) Synopsis() string { return "Select locations to draw a path from." }
func (*selectCmd) Usage() string {
	return `select -input <file> [-device <id>] [-pick 0,2,5] [-output <file>]
	Pick at least 2 locations of a track and hand them off to the draw command.
	Without -pick, locations are picked from an interactive list.
  `
}

func (c *selectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputFile, "input", "", "snapshot file")
	f.StringVar(&c.deviceID, "device", "", "only list locations of this device")
	f.StringVar(&c.pick, "pick", "", "comma separated indexes of the locations to select")
	f.StringVar(&c.outputFile, "output", "", "hand-off file, stdout if empty")
}

func (c *selectCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	logger := args[1].(*slog.Logger)

	if c.pick == "" && isStdio(c.inputFile) {
		terminal.Error(nil, "The interactive list needs a snapshot file, use -input")
		return subcommands.ExitUsageError
	}

	points, err := loadPoints(c.inputFile, logger)
	if err != nil {
		terminal.Error(err, "Failed to read snapshot")
		return subcommands.ExitFailure
	}

	source := sourceTrack(points, c.deviceID)
	if source.Len() == 0 {
		terminal.Error(nil, "No locations to select from")
		return subcommands.ExitFailure
	}

	sel := selection.New(source.Points)
	list := newPointList(sel, terminal.IsTerminal(os.Stderr))

	var selected []track.LocationPoint
	if c.pick != "" {
		selected, err = pick(list, sel, c.pick)
	} else {
		selected, err = interactive(list, sel, os.Stdin, terminal.Output)
	}

	var insufficient *selection.InsufficientSelectionError
	switch {
	case errors.As(err, &insufficient):
		terminal.Error(nil, "%s", insufficient.Error())
		return subcommands.ExitFailure
	case errors.Is(err, errAborted):
		terminal.Warn("Selection aborted")
		return subcommands.ExitFailure
	case err != nil:
		terminal.Error(err, "Failed to select locations")
		return subcommands.ExitFailure
	}

	w, _, err := openOutput(c.outputFile)
	if err != nil {
		terminal.Error(err, "Could not open file '%s'", c.outputFile)
		return subcommands.ExitFailure
	}
	defer w.Close()

	if err := handoff.Encode(w, selected); err != nil {
		terminal.Error(err, "Failed to hand off selection")
		return subcommands.ExitFailure
	}

	logger.Info("selection handed off", "points", len(selected))
	return subcommands.ExitSuccess
}

// sourceTrack returns the chronological track locations are picked from
func sourceTrack(points []track.LocationPoint, deviceID string) track.Track {
	if deviceID == "" {
		return track.Merge(points)
	}

	for _, t := range track.GroupByDevice(points) {
		if t.DeviceID == deviceID {
			return t
		}
	}
	return track.Track{DeviceID: deviceID}
}

func pick(list *pointList, sel *selection.Manager, picks string) ([]track.LocationPoint, error) {
	idx, err := parseIndexes(picks)
	if err != nil {
		return nil, err
	}
	for _, i := range idx {
		if _, err := list.OnToggle(i); err != nil {
			return nil, err
		}
	}
	return sel.Finalize()
}

func interactive(list *pointList, sel *selection.Manager, in io.Reader, out io.Writer) ([]track.LocationPoint, error) {
	printList(list, out)

	input := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Toggle locations (0-%d), n to draw, r to reset, q to quit [%d selected]: ", list.Len()-1, sel.Count())
		if !input.Scan() {
			if err := input.Err(); err != nil {
				return nil, err
			}
			return nil, errAborted
		}

		switch cmd := strings.ToLower(strings.TrimSpace(input.Text())); cmd {
		case "q", "quit":
			return nil, errAborted
		case "n", "next":
			pts, err := sel.Finalize()
			var insufficient *selection.InsufficientSelectionError
			if errors.As(err, &insufficient) {
				terminal.Warn("%s", insufficient.Error())
				continue
			}
			return pts, err
		case "r", "reset":
			sel.Reset()
			printList(list, out)
		case "":
			printList(list, out)
		default:
			idx, err := parseIndexes(cmd)
			if err != nil {
				terminal.Warn("%s", err)
				continue
			}
			for _, i := range idx {
				if _, err := list.OnToggle(i); err != nil {
					terminal.Warn("%s", err)
				}
			}
			printList(list, out)
		}
	}
}

func printList(list *pointList, out io.Writer) {
	fmt.Fprintln(out, "")
	for i := 0; i < list.Len(); i++ {
		fmt.Fprintln(out, "  "+list.Render(i))
	}
	fmt.Fprintln(out, "")
}
