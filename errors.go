package jsonfmt

import (
	"errors"
	"fmt"
	"io"

	"github.com/arnodel/jsonfmt/internal/scanner"
)

var (
	// ErrUnexpectedInput is wrapped by a *SyntaxError when a byte is not
	// valid at its position in the grammar.
	ErrUnexpectedInput = errors.New("unexpected input")

	// ErrLiteralMismatch is wrapped by a *SyntaxError when a byte sequence
	// starting like null, true or false turns out to be something else.
	ErrLiteralMismatch = errors.New("invalid literal")

	// ErrInvalidIndent is returned when the indent width is negative.
	ErrInvalidIndent = errors.New("negative indent width")
)

// Pos is a position in the input: 0-based line, and 0-based column counted in
// runes.
type Pos = scanner.Pos

// A SyntaxError is returned when the input cannot be formatted.  Err is one of
// ErrUnexpectedInput, ErrLiteralMismatch or io.ErrUnexpectedEOF (the input
// ended while a token or punctuation was still expected).
type SyntaxError struct {
	Pos  Pos  // Where the problem was found (0-based)
	Byte byte // The offending byte, meaningless at end of input
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Err == io.ErrUnexpectedEOF {
		return fmt.Sprintf("syntax error at L%d,C%d: unexpected <EOF>", e.Pos.Line+1, e.Pos.Col+1)
	}
	return fmt.Sprintf("syntax error at L%d,C%d: %s: %q", e.Pos.Line+1, e.Pos.Col+1, e.Err, e.Byte)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// unexpectedByte reports b, found at the current position of scanr.
func unexpectedByte(scanr *scanner.Scanner, b byte) error {
	return &SyntaxError{Pos: scanr.CurrentPos(), Byte: b, Err: ErrUnexpectedInput}
}

func unexpectedEOF(scanr *scanner.Scanner) error {
	return &SyntaxError{Pos: scanr.CurrentPos(), Err: io.ErrUnexpectedEOF}
}

// eofIsUnexpected turns io.EOF into a *SyntaxError and leaves any other error
// alone.
func eofIsUnexpected(scanr *scanner.Scanner, err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return unexpectedEOF(scanr)
	}
	return err
}
