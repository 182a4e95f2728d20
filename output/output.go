// Package output writes formatted messages to the console.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/awantoch/hello/constants"
)

// ErrWrite is returned when the underlying writer fails or accepts fewer
// bytes than requested.
var ErrWrite = errors.New("output write failed")

// Printer writes a line of text.
type Printer interface {
	Print(text string) error
}

// PrintStrategy is the richer printing capability. The processor prefers it
// over Printer whenever a printer implements both.
type PrintStrategy interface {
	ExecutePrint(formattedMessage string) error
}

// StdoutPrinter writes lines to standard output, or to any writer it is
// given.
type StdoutPrinter struct {
	w io.Writer
}

// NewStdoutPrinter returns a printer writing to w. A nil w means os.Stdout.
func NewStdoutPrinter(w io.Writer) *StdoutPrinter {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutPrinter{w: w}
}

// Print writes text followed by a single newline.
func (p *StdoutPrinter) Print(text string) error {
	line := text + "\n"
	n, err := io.WriteString(p.w, line)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if n != len(line) {
		return fmt.Errorf("%w: %w", ErrWrite, io.ErrShortWrite)
	}
	return nil
}

// ExecutePrint prepends the "[Strategy]: " label and prints.
func (p *StdoutPrinter) ExecutePrint(formattedMessage string) error {
	return p.Print(constants.LabelStrategy + formattedMessage)
}
