package jsonfmt

// ScalarType encodes the four possible JSON scalar types.
type ScalarType uint8

const (
	Null    ScalarType = 0x0 // the type of JSON null
	Boolean ScalarType = 0x1 // a JSON boolean
	Number  ScalarType = 0x2 // a JSON number
	String  ScalarType = 0x3 // a JSON string
)

// A Colorizer surrounds scalars with escape codes.  A nil *Colorizer prints
// no codes at all.
type Colorizer struct {
	KeyColorCode     []byte
	ScalarColorCodes [4][]byte
	ResetCode        []byte
}

func (c *Colorizer) scalarColorCode(tp ScalarType, isKey bool) []byte {
	if isKey {
		return c.KeyColorCode
	}
	return c.ScalarColorCodes[tp]
}

// Start outputs the code for a scalar of the given type.
func (c *Colorizer) Start(p *Printer, tp ScalarType, isKey bool) {
	if c == nil {
		return
	}
	if code := c.scalarColorCode(tp, isKey); len(code) > 0 {
		p.PrintBytes(code)
	}
}

// End outputs the reset code.
func (c *Colorizer) End(p *Printer) {
	if c != nil && len(c.ResetCode) > 0 {
		p.PrintBytes(c.ResetCode)
	}
}

// Some color ANSI codes
var (
	Reset = []byte("\033[0m")

	Yellow = []byte("\033[33m")
	White  = []byte("\033[37m")
	Green  = []byte("\033[32m")

	DimWhite = []byte("\033[37;2m")

	BrightBlue = []byte("\033[34;1m")
)

// DefaultColorizer holds the colors used by the jsonfmt command.
var DefaultColorizer = Colorizer{
	ScalarColorCodes: [4][]byte{DimWhite, Yellow, White, Green},
	KeyColorCode:     BrightBlue,
	ResetCode:        Reset,
}
