package jsonfmt

import (
	"io"

	"github.com/arnodel/jsonfmt/internal/scanner"
)

// formatSinglePass formats its input by reacting to each byte in turn, with
// no knowledge of the grammar beyond brackets, commas and colons.  Only
// strings are handed over to a token copier.  It is faster than formatGrammar
// and produces the same output for valid JSON, but it does no validation:
// malformed input gives malformed output.  It never pops the indentation
// below zero, and it reports the end of input as unexpected if brackets are
// still open or nothing but whitespace was found.
func formatSinglePass(p *Printer, scanr *scanner.Scanner) error {
	// Set after an opening bracket or a comma: the next printed byte starts a
	// line and needs the indentation.
	newLine := false
	seen := false
	for {
		buf, err := scanr.Fill()
		if err == io.EOF {
			if !seen || p.Depth() > 0 {
				return unexpectedEOF(scanr)
			}
			return nil
		}
		if err != nil {
			return err
		}
		i := 0
	scan:
		for ; i < len(buf); i++ {
			b := buf[i]
			if scanner.IsSpace(b) {
				continue
			}
			seen = true
			if b == '}' || b == ']' {
				if p.Depth() > 0 {
					p.Pop()
				}
				if !newLine {
					p.NewLine()
					p.PrintIndent()
				}
			}
			if newLine {
				p.PrintIndent()
				newLine = false
			}
			switch b {
			case '"':
				break scan
			case '{', '[':
				p.Push()
				p.PrintByte(b)
				p.NewLine()
				newLine = true
			case ',':
				p.PrintByte(',')
				p.NewLine()
				newLine = true
			case ':':
				p.PrintBytes(keySeparatorBytes)
			default:
				p.PrintByte(b)
			}
		}
		scanr.Consume(i)
		if i < len(buf) {
			if err := copyString(p, nil, scanr, false); err != nil {
				return err
			}
		}
	}
}
