package jsonfmt

import (
	"github.com/arnodel/jsonfmt/internal/debug"
	"github.com/arnodel/jsonfmt/internal/scanner"
)

// A frame says what the grammar-driven formatter expects next.
type frame uint8

const (
	valueFrame  frame = iota // any JSON value
	objectFrame              // a key or the end of an object
	pairFrame                // ',' or '}' after a key-value pair
	arrayFrame               // an element or the end of an array
	elemFrame                // ',' or ']' after an array element
)

// formatGrammar formats exactly one JSON value, tracking where it is in the
// grammar with an explicit stack of frames rather than with recursion, so
// nesting depth is only limited by memory.  Bytes after the value are not
// read.
func formatGrammar(p *Printer, c *Colorizer, scanr *scanner.Scanner) error {
	stack := []frame{valueFrame}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		b, err := scanr.SkipSpaceAndPeek()
		if err != nil {
			return eofIsUnexpected(scanr, err)
		}

		switch fr {
		case valueFrame:
			switch {
			case b == '{' || b == '[':
				scanr.Consume(1)
				p.PrintByte(b)
				p.NewLine()
				p.Push()
				if debug.On {
					debug.Printf("open %q, depth %d", b, p.Depth())
				}
				if b == '{' {
					stack = append(stack, objectFrame)
				} else {
					stack = append(stack, arrayFrame)
				}
			case b == '"':
				err = copyString(p, c, scanr, false)
			case scanner.IsNumberStart(b):
				err = copyNumber(p, c, scanr)
			case b == 'n':
				err = copyLiteral(p, c, scanr, Null, nullLiteral)
			case b == 't':
				err = copyLiteral(p, c, scanr, Boolean, trueLiteral)
			case b == 'f':
				err = copyLiteral(p, c, scanr, Boolean, falseLiteral)
			default:
				return unexpectedByte(scanr, b)
			}
			if err != nil {
				return err
			}

		case objectFrame:
			switch b {
			case '"':
				p.PrintIndent()
				if err := copyString(p, c, scanr, true); err != nil {
					return err
				}
				b, err = scanr.SkipSpaceAndPeek()
				if err != nil {
					return eofIsUnexpected(scanr, err)
				}
				if b != ':' {
					return unexpectedByte(scanr, b)
				}
				scanr.Consume(1)
				p.PrintBytes(keySeparatorBytes)
				stack = append(stack, pairFrame, valueFrame)
			case '}':
				closeContainer(p, scanr, b)
			default:
				return unexpectedByte(scanr, b)
			}

		case arrayFrame:
			if b == ']' {
				closeContainer(p, scanr, b)
			} else {
				p.PrintIndent()
				stack = append(stack, elemFrame, valueFrame)
			}

		case pairFrame, elemFrame:
			closer, next := byte('}'), objectFrame
			if fr == elemFrame {
				closer, next = ']', arrayFrame
			}
			switch b {
			case ',':
				scanr.Consume(1)
				p.PrintByte(',')
			case closer:
				// Left for the containing frame to consume.
			default:
				return unexpectedByte(scanr, b)
			}
			p.NewLine()
			stack = append(stack, next)
		}
	}
	return nil
}

// closeContainer consumes a closing bracket and prints it on the current line
// at the outer indentation.
func closeContainer(p *Printer, scanr *scanner.Scanner, b byte) {
	scanr.Consume(1)
	p.Pop()
	if debug.On {
		debug.Printf("close %q, depth %d", b, p.Depth())
	}
	p.PrintIndent()
	p.PrintByte(b)
}

var keySeparatorBytes = []byte(": ")
