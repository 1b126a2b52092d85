package jsonfmt

import (
	"io"

	"github.com/arnodel/jsonfmt/internal/scanner"
	"go4.org/mem"
)

// copyString copies a string token verbatim to p.  The scanner must be
// positioned on the opening quote.  Escape sequences are not checked, the
// only thing that matters is to find the closing quote, which is the first
// quote not preceded by an unpaired backslash.
func copyString(p *Printer, c *Colorizer, scanr *scanner.Scanner, isKey bool) error {
	c.Start(p, String, isKey)
	p.PrintByte('"')
	scanr.Consume(1)

	// Carried over refills, so that a backslash at the end of a buffer still
	// escapes the first byte of the next one.
	escaped := false
	for {
		buf, err := scanr.Fill()
		if err != nil {
			return eofIsUnexpected(scanr, err)
		}
		for i, b := range buf {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				p.PrintBytes(buf[:i+1])
				scanr.Consume(i + 1)
				c.End(p)
				return nil
			}
		}
		p.PrintBytes(buf)
		scanr.Consume(len(buf))
	}
}

// copyNumber copies a number token verbatim to p.  The first byte is taken
// unconditionally, then all following bytes that may be part of a number.
// No attempt is made to check that the number is well formed.  The end of
// input is fine here.
func copyNumber(p *Printer, c *Colorizer, scanr *scanner.Scanner) error {
	c.Start(p, Number, false)
	buf, err := scanr.Fill()
	if err != nil {
		return eofIsUnexpected(scanr, err)
	}
	p.PrintByte(buf[0])
	scanr.Consume(1)
	for {
		buf, err := scanr.Fill()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		n := 0
		for n < len(buf) && scanner.IsNumberPart(buf[n]) {
			n++
		}
		if n > 0 {
			p.PrintBytes(buf[:n])
			scanr.Consume(n)
		}
		if n < len(buf) {
			break
		}
	}
	c.End(p)
	return nil
}

const maxLiteralLen = 5

var (
	nullLiteral  = mem.S("null")
	trueLiteral  = mem.S("true")
	falseLiteral = mem.S("false")
)

// copyLiteral reads len(lit) bytes and copies them to p if they are equal to
// lit.  Otherwise nothing is written and the first differing byte is reported.
func copyLiteral(p *Printer, c *Colorizer, scanr *scanner.Scanner, tp ScalarType, lit mem.RO) error {
	var buf [maxLiteralLen]byte
	pos := scanr.CurrentPos()
	n, err := scanr.ReadFull(buf[:lit.Len()])
	if err != nil {
		return eofIsUnexpected(scanr, err)
	}
	got := mem.B(buf[:n])
	if !got.Equal(lit) {
		for i := 0; i < n; i++ {
			if got.At(i) != lit.At(i) {
				// Literals are ASCII so the column is easy to work out.
				pos.Col += i
				return &SyntaxError{Pos: pos, Byte: got.At(i), Err: ErrLiteralMismatch}
			}
		}
	}
	c.Start(p, tp, false)
	p.PrintBytes(buf[:n])
	c.End(p)
	return nil
}
