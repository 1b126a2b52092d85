package jsonfmt

import (
	"io"

	"github.com/arnodel/jsonfmt/internal/scanner"
)

// Algorithm selects how a Formatter processes its input.
type Algorithm int

const (
	// Grammar follows the JSON grammar with an explicit stack and rejects
	// invalid input.
	Grammar Algorithm = iota

	// SinglePass reacts to structural bytes without tracking the grammar.
	// It is faster but does little validation, see FormatFast.
	SinglePass
)

func (a Algorithm) String() string {
	switch a {
	case Grammar:
		return "grammar"
	case SinglePass:
		return "single-pass"
	default:
		return "unknown"
	}
}

// A Formatter re-indents a JSON document read from an io.Reader, streaming
// the result to an io.Writer.  The zero value is usable and uses the Grammar
// algorithm with no indentation.  A Formatter holds no state between calls so
// it can be used concurrently on independent streams.
type Formatter struct {
	// Number of spaces per nesting level, must not be negative.
	IndentWidth int

	Algorithm Algorithm

	// Capacity of the input buffer, a default is used if it is 0 or less.
	BufferSize int

	// If not nil, scalars and keys are surrounded by its codes.  Only the
	// Grammar algorithm knows keys from values, SinglePass ignores it.
	Colorizer *Colorizer

	// If not nil, it is flushed after each line of output.
	Flusher Flusher
}

// Format reads one JSON value from r and writes it to w.  Output is written
// as it is produced and is not retracted if an error occurs later on.
func (f *Formatter) Format(w io.Writer, r io.Reader) (err error) {
	if f.IndentWidth < 0 {
		return ErrInvalidIndent
	}
	var scanr *scanner.Scanner
	if f.BufferSize > 0 {
		scanr = scanner.NewScannerSize(r, f.BufferSize)
	} else {
		scanr = scanner.NewScanner(r)
	}
	p := NewPrinter(w, f.IndentWidth)
	p.Flusher = f.Flusher

	defer CatchPrinterError(&err)
	switch f.Algorithm {
	case SinglePass:
		return formatSinglePass(p, scanr)
	default:
		return formatGrammar(p, f.Colorizer, scanr)
	}
}

// Format formats a single JSON value from r to w, with indentWidth spaces per
// nesting level.  Input that is not valid JSON results in a *SyntaxError.
// Anything after the value is ignored.
func Format(w io.Writer, r io.Reader, indentWidth int) error {
	f := Formatter{IndentWidth: indentWidth}
	return f.Format(w, r)
}

// FormatFast formats r to w like Format, and produces the same output for
// valid JSON.  It does much less checking: unbalanced brackets, missing
// commas and the like are copied to the output instead of being reported,
// so callers needing validation should use Format.
func FormatFast(w io.Writer, r io.Reader, indentWidth int) error {
	f := Formatter{IndentWidth: indentWidth, Algorithm: SinglePass}
	return f.Format(w, r)
}
