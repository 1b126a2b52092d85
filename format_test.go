package jsonfmt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
)

const (
	mixedInput = `{ "a" : 1 , "b": "test \\", "c": false, "d": null, "e": 1.234e5, "f":  [ 1, 2  ] , "g"   : {},"h": [[[[]]]]}`

	mixedOutput = `{
    "a": 1,
    "b": "test \\",
    "c": false,
    "d": null,
    "e": 1.234e5,
    "f": [
        1,
        2
    ],
    "g": {
    },
    "h": [
        [
            [
                [
                ]
            ]
        ]
    ]
}`
)

// formatters lists both algorithms so that every test runs against each.
var formatters = []struct {
	name   string
	format func(w io.Writer, r io.Reader, indentWidth int) error
}{
	{"grammar", Format},
	{"single-pass", FormatFast},
}

// wellFormed is valid JSON, with the expected output for an indent width of 2.
var wellFormed = []struct {
	name  string
	input string
	want  string
}{
	{"empty array", "[]", "[\n]"},
	{"empty object with space", "{ }", "{\n}"},
	{"empty array with space", "[ \n ]", "[\n]"},
	{"string", `"x"`, `"x"`},
	{"number with spaces", "  -1.5e+3  ", "-1.5e+3"},
	{"true", "true", "true"},
	{"null", "\nnull\n", "null"},
	{"nested arrays", `[1,[2,[3]],{"k":{"x":[]}}]`,
		"[\n  1,\n  [\n    2,\n    [\n      3\n    ]\n  ],\n  {\n    \"k\": {\n      \"x\": [\n      ]\n    }\n  }\n]"},
	{"all whitespace kinds", "\r\n\t{\n\"a\"\t:\r\n[ true ,false,null ] }\n",
		"{\n  \"a\": [\n    true,\n    false,\n    null\n  ]\n}"},
	{"empty containers in containers", `{"a":[{}],"b":{"c":[]}}`,
		"{\n  \"a\": [\n    {\n    }\n  ],\n  \"b\": {\n    \"c\": [\n    ]\n  }\n}"},
	{"tricky strings", `{"{[,:]}":"\"\\","\\":"\u00e9 😀","":""}`,
		"{\n  \"{[,:]}\": \"\\\"\\\\\",\n  \"\\\\\": \"\\u00e9 😀\",\n  \"\": \"\"\n}"},
	{"literal preservation", `[1.0,-0,1E400,0.10000000000000000001,"\/"]`,
		"[\n  1.0,\n  -0,\n  1E400,\n  0.10000000000000000001,\n  \"\\/\"\n]"},
}

func TestMixedExample(t *testing.T) {
	for _, f := range formatters {
		t.Run(f.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := f.format(&out, strings.NewReader(mixedInput), 4); err != nil {
				t.Fatalf("format: %v", err)
			}
			if diff := cmp.Diff(mixedOutput, out.String()); diff != "" {
				t.Errorf("(-want, +got):\n%s", diff)
			}
		})
	}
}

func TestWellFormed(t *testing.T) {
	for _, f := range formatters {
		for _, tt := range wellFormed {
			t.Run(f.name+"/"+tt.name, func(t *testing.T) {
				var out bytes.Buffer
				if err := f.format(&out, strings.NewReader(tt.input), 2); err != nil {
					t.Fatalf("format: %v", err)
				}
				if diff := cmp.Diff(tt.want, out.String()); diff != "" {
					t.Errorf("(-want, +got):\n%s", diff)
				}
			})
		}
	}
}

// formatString runs the formatter with the given algorithm, indent and buffer
// size, reading through r.
func formatString(t *testing.T, alg Algorithm, indent, size int, r io.Reader) string {
	t.Helper()
	var out bytes.Buffer
	f := Formatter{IndentWidth: indent, Algorithm: alg, BufferSize: size}
	if err := f.Format(&out, r); err != nil {
		t.Fatalf("%s, indent %d, buffer size %d: %v", alg, indent, size, err)
	}
	return out.String()
}

func TestAlgorithmsAgree(t *testing.T) {
	inputs := []string{mixedInput}
	for _, tt := range wellFormed {
		inputs = append(inputs, tt.input)
	}
	for _, input := range inputs {
		for _, indent := range []int{0, 1, 2, 4} {
			want := formatString(t, Grammar, indent, 0, strings.NewReader(input))
			for _, size := range bufSizes {
				for _, alg := range []Algorithm{Grammar, SinglePass} {
					got := formatString(t, alg, indent, size, strings.NewReader(input))
					if diff := cmp.Diff(want, got); diff != "" {
						t.Errorf("%#q: %s, indent %d, buffer size %d (-want, +got):\n%s", input, alg, indent, size, diff)
					}
					got = formatString(t, alg, indent, size, iotest.OneByteReader(strings.NewReader(input)))
					if diff := cmp.Diff(want, got); diff != "" {
						t.Errorf("%#q: %s, one byte reads, indent %d (-want, +got):\n%s", input, alg, indent, diff)
					}
				}
			}
		}
	}
}

func TestIdempotent(t *testing.T) {
	for _, tt := range wellFormed {
		for _, indent := range []int{0, 2, 3} {
			for _, alg := range []Algorithm{Grammar, SinglePass} {
				once := formatString(t, alg, indent, 0, strings.NewReader(tt.input))
				twice := formatString(t, alg, indent, 0, strings.NewReader(once))
				if diff := cmp.Diff(once, twice); diff != "" {
					t.Errorf("%s: %s, indent %d (-once, +twice):\n%s", tt.name, alg, indent, diff)
				}
			}
		}
	}
}

// Formatting must only change insignificant whitespace, so the minimized
// forms of the input and the output must be identical valid JSON.
func TestSameJSONValue(t *testing.T) {
	inputs := []string{mixedInput}
	for _, tt := range wellFormed {
		inputs = append(inputs, tt.input)
	}
	for _, input := range inputs {
		want, err := hujson.Minimize([]byte(input))
		if err != nil {
			t.Fatalf("Minimize input %#q: %v", input, err)
		}
		for _, alg := range []Algorithm{Grammar, SinglePass} {
			out := formatString(t, alg, 2, 3, strings.NewReader(input))
			if _, err := hujson.Parse([]byte(out)); err != nil {
				t.Errorf("%s output of %#q is not valid: %v", alg, input, err)
				continue
			}
			got, err := hujson.Minimize([]byte(out))
			if err != nil {
				t.Fatalf("Minimize output: %v", err)
			}
			if diff := cmp.Diff(string(want), string(got)); diff != "" {
				t.Errorf("%s changed the value of %#q (-want, +got):\n%s", alg, input, diff)
			}
		}
	}
}

func TestDeepNesting(t *testing.T) {
	const depth = 100000
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	for _, f := range formatters {
		t.Run(f.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := f.format(&out, strings.NewReader(input), 0); err != nil {
				t.Fatalf("format: %v", err)
			}
			want := strings.Repeat("[\n", depth) + "]" + strings.Repeat("\n]", depth-1)
			if out.String() != want {
				t.Errorf("unexpected output of length %d", out.Len())
			}
		})
	}
}

func TestTrailingInputIgnored(t *testing.T) {
	var out bytes.Buffer
	r := strings.NewReader(`[1] garbage`)
	if err := Format(&out, r, 2); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got := out.String(); got != "[\n  1\n]" {
		t.Errorf("got %q", got)
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantPos  Pos
		wantByte byte
	}{
		{"empty input", "", io.ErrUnexpectedEOF, Pos{}, 0},
		{"only whitespace", " \n ", io.ErrUnexpectedEOF, Pos{Line: 1, Col: 1}, 0},
		{"truncated string", `{"a": "tes`, io.ErrUnexpectedEOF, Pos{Col: 10}, 0},
		{"truncated key", `{"a`, io.ErrUnexpectedEOF, Pos{Col: 3}, 0},
		{"missing closer after number", `[1, 2`, io.ErrUnexpectedEOF, Pos{Col: 5}, 0},
		{"missing colon at end", `{"a"  `, io.ErrUnexpectedEOF, Pos{Col: 6}, 0},
		{"truncated literal", `[tru`, io.ErrUnexpectedEOF, Pos{Col: 4}, 0},
		{"invalid literal", `nul,`, ErrLiteralMismatch, Pos{Col: 3}, ','},
		{"invalid literal in object", "{\n  \"a\": fals}", ErrLiteralMismatch, Pos{Line: 1, Col: 11}, '}'},
		{"missing colon", `{"a" 1}`, ErrUnexpectedInput, Pos{Col: 5}, '1'},
		{"missing comma", `[1 2]`, ErrUnexpectedInput, Pos{Col: 3}, '2'},
		{"wrong closer", `{"a":1]`, ErrUnexpectedInput, Pos{Col: 6}, ']'},
		{"wrong closer for array", `[1}`, ErrUnexpectedInput, Pos{Col: 2}, '}'},
		{"unquoted key", `{a:1}`, ErrUnexpectedInput, Pos{Col: 1}, 'a'},
		{"unexpected value", `[1, @]`, ErrUnexpectedInput, Pos{Col: 4}, '@'},
		{"comment", `// hi`, ErrUnexpectedInput, Pos{}, '/'},
		{"NUL is not end of input", "[\x00]", ErrUnexpectedInput, Pos{Col: 1}, 0},
	}
	for _, tt := range tests {
		for _, size := range bufSizes {
			t.Run(tt.name, func(t *testing.T) {
				f := Formatter{IndentWidth: 2, BufferSize: size}
				err := f.Format(io.Discard, strings.NewReader(tt.input))
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("buffer size %d: expected %v, got %v", size, tt.wantErr, err)
				}
				var serr *SyntaxError
				if !errors.As(err, &serr) {
					t.Fatalf("expected a *SyntaxError, got %T", err)
				}
				if serr.Pos != tt.wantPos {
					t.Errorf("buffer size %d: expected position %+v, got %+v", size, tt.wantPos, serr.Pos)
				}
				if serr.Byte != tt.wantByte {
					t.Errorf("expected byte %q, got %q", tt.wantByte, serr.Byte)
				}
			})
		}
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[1,\n  x]", `syntax error at L2,C3: unexpected input: 'x'`},
		{`nulL`, `syntax error at L1,C4: invalid literal: 'L'`},
		{`["abc`, `syntax error at L1,C6: unexpected <EOF>`},
	}
	for _, tt := range tests {
		err := Format(io.Discard, strings.NewReader(tt.input), 2)
		if err == nil {
			t.Fatalf("%#q: expected an error", tt.input)
		}
		if got := err.Error(); got != tt.want {
			t.Errorf("%#q: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFastFormatEndOfInput(t *testing.T) {
	for _, input := range []string{"", "  \n", `[1, 2`, `{"a": [`, `"abc`} {
		err := FormatFast(io.Discard, strings.NewReader(input), 2)
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("%#q: expected unexpected EOF, got %v", input, err)
		}
	}
}

// The single-pass algorithm does not validate its input.  The only
// requirements on malformed input are that it terminates without panicking.
func TestFastFormatMalformed(t *testing.T) {
	inputs := []string{
		"]", "}}}", "]]][[[", `{"a" 1}`, `[1 2]`, `{"a":1]`, `{,}`, `@`,
		`nul,`, `tru`, `[1,]`, "[\x00]", `{"a":}`, `::::`, `,,,`, `"\`,
		`]{"a":[}`, strings.Repeat("}", 1000) + strings.Repeat("[", 1000),
	}
	for _, input := range inputs {
		for _, size := range []int{1, 3, 0} {
			done := make(chan error, 1)
			go func() {
				f := Formatter{IndentWidth: 2, Algorithm: SinglePass, BufferSize: size}
				done <- f.Format(io.Discard, strings.NewReader(input))
			}()
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatalf("%#q: single-pass formatting did not terminate", input)
			}
		}
	}
}

func TestFastFormatUnbalanced(t *testing.T) {
	var out bytes.Buffer
	if err := FormatFast(&out, strings.NewReader(`[1]]`), 2); err != nil {
		t.Fatalf("FormatFast: %v", err)
	}
	if got := out.String(); got != "[\n  1\n]\n]" {
		t.Errorf("got %q", got)
	}
}

func TestColorizer(t *testing.T) {
	c := &Colorizer{
		KeyColorCode:     []byte("<k>"),
		ScalarColorCodes: [4][]byte{[]byte("<0>"), []byte("<b>"), []byte("<n>"), []byte("<s>")},
		ResetCode:        []byte("</>"),
	}
	var out bytes.Buffer
	f := Formatter{IndentWidth: 2, Colorizer: c}
	if err := f.Format(&out, strings.NewReader(`{"a": [1, "x", true, null]}`)); err != nil {
		t.Fatal(err)
	}
	want := "{\n  <k>\"a\"</>: [\n    <n>1</>,\n    <s>\"x\"</>,\n    <b>true</>,\n    <0>null</>\n  ]\n}"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("(-want, +got):\n%s", diff)
	}

	// The single-pass algorithm cannot tell keys from values.
	out.Reset()
	f.Algorithm = SinglePass
	if err := f.Format(&out, strings.NewReader(`{"a": 1}`)); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "{\n  \"a\": 1\n}" {
		t.Errorf("got %q", got)
	}
}

func TestNegativeIndent(t *testing.T) {
	for _, f := range formatters {
		var out bytes.Buffer
		err := f.format(&out, strings.NewReader("[]"), -1)
		if err != ErrInvalidIndent {
			t.Errorf("%s: expected ErrInvalidIndent, got %v", f.name, err)
		}
		if out.Len() != 0 {
			t.Errorf("%s: unexpected output %q", f.name, out.String())
		}
	}
}

type failingWriter struct {
	n   int // bytes accepted before failing
	err error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		n := w.n
		w.n = 0
		return n, w.err
	}
	w.n -= len(p)
	return len(p), nil
}

func TestWriteError(t *testing.T) {
	boom := errors.New("boom")
	for _, f := range formatters {
		for _, n := range []int{0, 1, 10, 50} {
			w := &failingWriter{n: n, err: boom}
			err := f.format(w, strings.NewReader(mixedInput), 4)
			if !errors.Is(err, boom) {
				t.Errorf("%s after %d bytes: expected boom, got %v", f.name, n, err)
			}
			var perr *PrinterError
			if !errors.As(err, &perr) {
				t.Errorf("%s: expected a *PrinterError, got %T", f.name, err)
			}
		}
	}
}

func TestReadError(t *testing.T) {
	boom := errors.New("boom")
	for _, f := range formatters {
		r := io.MultiReader(strings.NewReader(`{"a": [1, `), iotest.ErrReader(boom))
		if err := f.format(io.Discard, r, 2); err != boom {
			t.Errorf("%s: expected boom, got %v", f.name, err)
		}
	}
}

type countingFlusher struct {
	n int
}

func (f *countingFlusher) Flush() error {
	f.n++
	return nil
}

func TestFlusher(t *testing.T) {
	for _, alg := range []Algorithm{Grammar, SinglePass} {
		var fl countingFlusher
		f := Formatter{IndentWidth: 2, Algorithm: alg, Flusher: &fl}
		var out bytes.Buffer
		if err := f.Format(&out, strings.NewReader(mixedInput)); err != nil {
			t.Fatal(err)
		}
		if want := strings.Count(out.String(), "\n"); fl.n != want {
			t.Errorf("%s: %d flushes for %d lines", alg, fl.n, want)
		}
	}
}
