package scanner

import (
	"io"

	"github.com/arnodel/jsonfmt/internal/debug"
)

// Pos is a position in the input, both fields are 0-based.  Col counts runes,
// not bytes.
type Pos struct {
	Line int
	Col  int
}

// A Scanner is a refillable buffered view over an io.Reader.  Bytes are
// consumed in order and never read again.  The end of the input is signalled
// with io.EOF, never with a special byte value, because any byte may appear in
// a JSON string.
type Scanner struct {
	reader io.Reader
	buf    []byte

	// The first unfilled position in buf
	// 0 <= fillIndex <= len(buf)
	fillIndex int

	// Current position in buf
	// 0 <= currentIndex <= fillIndex
	currentIndex int

	// Records lineno and colno of current position (from when the scanning
	// started)
	currentPos Pos

	// Sticky error from the reader (io.EOF included).  It is only reported
	// once all buffered bytes have been consumed.
	err error
}

func NewScanner(reader io.Reader) *Scanner {
	return NewScannerSize(reader, defaultBufSize)
}

// NewScannerSize returns a scanner whose buffer holds at most size bytes.  A
// size smaller than 1 is treated as 1.
func NewScannerSize(reader io.Reader, size int) *Scanner {
	if size < 1 {
		size = 1
	}
	return &Scanner{
		reader: reader,
		buf:    make([]byte, size),
	}
}

func (s *Scanner) fillBuf() {
	if s.err != nil {
		return
	}
	// Only called when everything has been consumed, so the whole buffer can
	// be reused.
	s.fillIndex = 0
	s.currentIndex = 0
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := s.reader.Read(s.buf)
		s.fillIndex += n
		if err != nil {
			s.err = err
			return
		}
		if n > 0 {
			debug.Printf("scanner: filled %d bytes at %d:%d", n, s.currentPos.Line, s.currentPos.Col)
			return
		}
	}
	s.err = io.ErrNoProgress
}

// Fill returns the unconsumed bytes held in the buffer, reading more from the
// underlying reader if they have all been consumed.  The returned slice is
// only valid until the next call to a method of s.  At the end of the input
// Fill returns (nil, io.EOF).
func (s *Scanner) Fill() ([]byte, error) {
	if s.currentIndex >= s.fillIndex {
		s.fillBuf()
	}
	if s.currentIndex < s.fillIndex {
		return s.buf[s.currentIndex:s.fillIndex], nil
	}
	return nil, s.err
}

// Peek returns the next byte without consuming it.
func (s *Scanner) Peek() (byte, error) {
	buf, err := s.Fill()
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Read consumes and returns the next byte.
func (s *Scanner) Read() (byte, error) {
	b, err := s.Peek()
	if err != nil {
		return 0, err
	}
	s.Consume(1)
	return b, nil
}

// Consume discards the next n bytes, which must have been returned by a
// previous call to Fill or Peek.
func (s *Scanner) Consume(n int) {
	if n > s.fillIndex-s.currentIndex {
		panic("consuming more bytes than buffered")
	}
	for _, b := range s.buf[s.currentIndex : s.currentIndex+n] {
		switch {
		case b == '\n':
			s.currentPos.Line++
			s.currentPos.Col = 0
		case b&0xC0 != 0x80:
			// Not a utf-8 continuation byte
			s.currentPos.Col++
		}
	}
	s.currentIndex += n
}

// ReadFull fills p with the next len(p) bytes.  If the input ends before p is
// full, the error is io.EOF if nothing was read, io.ErrUnexpectedEOF
// otherwise.  It returns the number of bytes read.
func (s *Scanner) ReadFull(p []byte) (int, error) {
	var n int
	for n < len(p) {
		buf, err := s.Fill()
		if err != nil {
			if err == io.EOF && n > 0 {
				err = io.ErrUnexpectedEOF
			}
			return n, err
		}
		k := copy(p[n:], buf)
		s.Consume(k)
		n += k
	}
	return n, nil
}

// SkipSpaceAndPeek consumes insignificant whitespace and returns the first
// other byte without consuming it.
func (s *Scanner) SkipSpaceAndPeek() (byte, error) {
	for {
		buf, err := s.Fill()
		if err != nil {
			return 0, err
		}
		for i, b := range buf {
			if !IsSpace(b) {
				s.Consume(i)
				return b, nil
			}
		}
		s.Consume(len(buf))
	}
}

func (s *Scanner) CurrentPos() Pos {
	return s.currentPos
}

const (
	maxConsecutiveEmptyReads = 100
	defaultBufSize           = 8192
)
