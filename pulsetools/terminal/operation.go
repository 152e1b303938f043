package terminal

import (
	"fmt"
	"time"
)

const spinner = `|/-\`

// Operation represents a long running operation
type Operation struct {
	channel chan bool
	done    chan struct{}
}

// NewOperation starts a long running operation. The spinner only runs when
// colors are on, otherwise the outcome is printed on its own line.
func NewOperation(format string, a ...interface{}) *Operation {
	o := &Operation{
		channel: make(chan bool),
		done:    make(chan struct{}),
	}
	if !colorEnabled {
		close(o.done)
		return o
	}

	spinFrames := []rune(spinner)
	spinFramesSize := len(spinFrames)
	label := fmt.Sprintf(format, a...)

	go func() {
		defer close(o.done)
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		pos := 0

	L:
		for {
			select {
			case <-o.channel:
				break L
			case <-ticker.C:
				fmt.Fprintf(Output, "\r  %s %s ", paint(yellow, label, true), string(spinFrames[pos%spinFramesSize]))
				pos++
			}
		}
	}()

	return o
}

// Success informs that the operation is over
func (o *Operation) Success(format string, a ...interface{}) {
	o.finished("✓", green, format, a...)
}

// Error informs that the operation failed
func (o *Operation) Error(err error, format string, a ...interface{}) {
	var message = format
	if err != nil {
		message = fmt.Sprintf("%s [%s]", format, err)
	}
	o.finished("✗", red, message, a...)
}

func (o *Operation) finished(symbol string, color string, format string, a ...interface{}) {
	select {
	case <-o.done:
	default:
		o.channel <- true
		<-o.done
		fmt.Fprint(Output, "\033[2K")
	}

	fmt.Fprintf(Output, "\r%s %s \n", symbol, paint(color, fmt.Sprintf(format, a...), colorEnabled))
}
