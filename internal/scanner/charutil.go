package scanner

func IsDigit[T byte | rune](b T) bool {
	return b >= '0' && b <= '9'
}

// IsSpace reports whether b is insignificant whitespace in JSON.
func IsSpace[T byte | rune](b T) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// IsNumberStart reports whether b can start a JSON number.
func IsNumberStart[T byte | rune](b T) bool {
	return b == '-' || IsDigit(b)
}

// IsNumberPart reports whether b can continue a number.  This is deliberately
// loose: no check is made that the bytes form a valid number.
func IsNumberPart[T byte | rune](b T) bool {
	return IsDigit(b) || b == '-' || b == '+' || b == '.' || b == 'e' || b == 'E'
}
