package terminal

import (
	"fmt"
	"io"
	"os"
	"pulse-tools/pulsetools/network"

	"golang.org/x/crypto/ssh/terminal"
)

const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	purple = "\033[35m"
	gray   = "\033[37m"
)

var categoryColors = map[network.Category]string{
	network.FiveG:   green,
	network.FourG:   yellow,
	network.ThreeG:  blue,
	network.TwoG:    red,
	network.Wifi:    purple,
	network.Unknown: gray,
}

// Output is where progress and errors are printed. Command output goes to stdout.
var Output io.Writer = os.Stderr

// IsTerminal returns true if the given file is an interactive terminal
func IsTerminal(f *os.File) bool {
	return terminal.IsTerminal(int(f.Fd()))
}

var colorEnabled = IsTerminal(os.Stderr)

// SetColor turns ANSI colors on or off
func SetColor(enabled bool) {
	colorEnabled = enabled
}

// Paint wraps s with the ANSI color of the given network category
func Paint(c network.Category, s string) string {
	return paint(categoryColors[c], s, true)
}

// Highlight paints s like Paint when colors are enabled
func Highlight(c network.Category, s string) string {
	return paint(categoryColors[c], s, colorEnabled)
}

func paint(color string, s string, enabled bool) string {
	if !enabled || color == "" {
		return s
	}
	return color + s + reset
}

// Error print error
func Error(err error, format string, a ...interface{}) {
	var message = format
	if err != nil {
		message = fmt.Sprintf("%s [%s]", format, err)
	}
	fmt.Fprintln(Output, paint(red, fmt.Sprintf(message, a...), colorEnabled))
}

// Warn prints a warning
func Warn(format string, a ...interface{}) {
	fmt.Fprintln(Output, paint(yellow, fmt.Sprintf(format, a...), colorEnabled))
}

// Info prints an informational message
func Info(format string, a ...interface{}) {
	fmt.Fprintf(Output, format+"\n", a...)
}
