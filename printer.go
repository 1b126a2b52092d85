package jsonfmt

import (
	"bytes"
	"fmt"
	"io"
)

// A Printer sends formatted output to an io.Writer and keeps track of the
// current indentation prefix, which is always IndentWidth spaces per level.
//
// The methods do not return an error because for this program it's assumed
// to be an exceptional case that outputting results in an error and the only
// sensible outcome is to stop formatting.  Instead they panic with a
// *PrinterError when the writer fails.  A user of the Printer can use
//
//	func printingFunction(p *Printer) (err error) {
//	    defer CatchPrinterError(&err)
//	    return doSomePrinting(p)
//	}
//
// to capture such errors.
type Printer struct {
	io.Writer

	// If Flusher is not nil, it is flushed after each new line.
	Flusher Flusher

	unit    []byte
	prefix  []byte
	depth   int
	scratch [1]byte
}

// A Flusher can flush buffered output, e.g. a *bufio.Writer.
type Flusher interface {
	Flush() error
}

// NewPrinter returns a Printer writing to w with width spaces per
// indentation level.  It panics if width is negative.
func NewPrinter(w io.Writer, width int) *Printer {
	if width < 0 {
		panic("negative indent width")
	}
	return &Printer{
		Writer: w,
		unit:   bytes.Repeat([]byte{' '}, width),
	}
}

// Push increases the indentation level by one.
func (p *Printer) Push() {
	p.prefix = append(p.prefix, p.unit...)
	p.depth++
}

// Pop decreases the indentation level by one.  Every Pop must match a
// previous Push; Pop panics otherwise.
func (p *Printer) Pop() {
	if p.depth == 0 {
		panic("indentation underflow")
	}
	p.prefix = p.prefix[:len(p.prefix)-len(p.unit)]
	p.depth--
}

// Depth returns the current indentation level.
func (p *Printer) Depth() int {
	return p.depth
}

// PrintIndent outputs the current indentation prefix.
func (p *Printer) PrintIndent() {
	if len(p.prefix) > 0 {
		p.PrintBytes(p.prefix)
	}
}

// NewLine outputs '\n' and flushes the Flusher if there is one.
func (p *Printer) NewLine() {
	p.PrintByte('\n')
	if p.Flusher != nil {
		if err := p.Flusher.Flush(); err != nil {
			panic(wrapError(err))
		}
	}
}

// PrintBytes sends the given bytes verbatim to the printer's writer.
func (p *Printer) PrintBytes(b []byte) {
	_, err := p.Write(b)
	if err != nil {
		panic(wrapError(err))
	}
}

// PrintByte sends a single byte to the printer's writer.
func (p *Printer) PrintByte(b byte) {
	p.scratch[0] = b
	p.PrintBytes(p.scratch[:])
}

// CatchPrinterError can be used to capture panics caused by a Printer because
// of an error encountered while attempting to send output.  See the Printer
// documentation for details.
func CatchPrinterError(err *error) {
	if r := recover(); r != nil {
		perr, ok := r.(*PrinterError)
		if ok {
			*err = perr
		} else {
			panic(r)
		}
	}
}

// A PrinterError contains an error that occurred while a Printer
// was sending some output.
type PrinterError struct {
	Err error
}

func (e *PrinterError) Error() string {
	return fmt.Sprintf("printer error: %s", e.Err)
}

func (e *PrinterError) Unwrap() error {
	return e.Err
}

func wrapError(err error) *PrinterError {
	return &PrinterError{Err: err}
}
