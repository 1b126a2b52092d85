package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/amterp/color"
	"github.com/arnodel/jsonfmt"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see app.failed).
	signal.Ignore(syscall.SIGPIPE)

	a := &app{
		stdin:            os.Stdin,
		stdout:           os.Stdout,
		stderr:           os.Stderr,
		stdoutIsTerminal: isTerminal(os.Stdout),
		stderrIsTerminal: isTerminal(os.Stderr),
	}
	os.Exit(a.run(os.Args[1:]))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// app holds what the program needs from its environment, so that it can be
// run with fake standard streams.
type app struct {
	stdin            io.Reader
	stdout           io.Writer
	stderr           io.Writer
	stdoutIsTerminal bool
	stderrIsTerminal bool
}

// run parses the command line arguments, formats the input and returns the
// exit status.
func (a *app) run(args []string) (status int) {
	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(a.stderr, "%s: %s", e, debug.Stack())
			status = 1
		}
	}()

	flags := flag.NewFlagSet("jsonfmt", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	flags.Usage = func() { a.printUsage(a.stderr, flags) }

	indent := flags.Int("i", 2, "indent `width`")
	writeBack := flags.Bool("w", false, "write result back to the input file(s)")
	fast := flags.Bool("f", false, "fast single-pass formatting (less validation)")
	help := flags.Bool("h", false, "show this help")
	colorMode := flags.String("color", "auto", "colorize output: auto, always, never")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *help {
		a.printUsage(a.stdout, flags)
		return 0
	}
	if *indent < 0 {
		a.errorf("invalid indent width: %d", *indent)
		return 2
	}

	formatter := &jsonfmt.Formatter{IndentWidth: *indent}
	if *fast {
		formatter.Algorithm = jsonfmt.SinglePass
	}

	var colorizer *jsonfmt.Colorizer
	switch *colorMode {
	case "always":
		colorizer = &jsonfmt.DefaultColorizer
	case "never":
	case "auto":
		if a.stdoutIsTerminal {
			colorizer = &jsonfmt.DefaultColorizer
		}
	default:
		a.errorf("invalid -color value: %q (use auto, always, or never)", *colorMode)
		return 2
	}

	files := flags.Args()
	if *writeBack && len(files) > 0 {
		return a.writeBackAll(files, formatter)
	}
	formatter.Colorizer = colorizer

	// Set up stdout for handling colors
	stdout := a.stdout
	if f, ok := stdout.(*os.File); ok && formatter.Colorizer != nil {
		stdout = colorable.NewColorable(f)
	}

	out := bufio.NewWriter(stdout)

	// If we are writing to a terminal, flush after each line so user gets
	// feedback early.
	if a.stdoutIsTerminal {
		formatter.Flusher = out
	}

	status = a.formatAll(out, files, formatter)
	if err := out.Flush(); err != nil && status == 0 {
		status = a.failed("", err)
	}
	return status
}

// formatAll formats the files in turn to out, or the standard input if there
// are none.  Outputs are separated with a new line.
func (a *app) formatAll(out *bufio.Writer, files []string, formatter *jsonfmt.Formatter) int {
	if len(files) == 0 {
		if err := formatter.Format(out, a.stdin); err != nil {
			return a.failed("", err)
		}
		return 0
	}
	status := 0
	for i, name := range files {
		if i > 0 {
			out.WriteByte('\n')
		}
		if err := formatFile(out, name, formatter); err != nil {
			if a.failed(name, err) == 0 {
				// Output has gone away, no point carrying on.
				return 0
			}
			status = 1
		}
	}
	return status
}

func formatFile(w io.Writer, name string, formatter *jsonfmt.Formatter) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return formatter.Format(w, f)
}

// failed reports err and returns the exit status, which is 0 if stdout is a
// pipe that something closed (e.g. 'head' or 'less').
func (a *app) failed(name string, err error) int {
	if errors.Is(err, syscall.EPIPE) {
		return 0
	}
	if name != "" {
		a.errorf("%s: %s", name, err)
	} else {
		a.errorf("%s", err)
	}
	return 1
}

func (a *app) errorf(msg string, args ...any) {
	c := color.New(color.FgRed)
	if a.stderrIsTerminal {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintf(a.stderr, "jsonfmt: %s\n", fmt.Sprintf(msg, args...))
}

func (a *app) printUsage(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprint(w, `jsonfmt - streaming JSON formatter

USAGE:
  jsonfmt [options...] [file...]

DESCRIPTION:
  jsonfmt re-indents JSON without loading it into memory.  Strings and
  numbers are copied exactly as they are in the input.

  Input is read from the files given as arguments, or from stdin.

OPTIONS:
`)
	flags.SetOutput(w)
	flags.PrintDefaults()
	flags.SetOutput(a.stderr)
	fmt.Fprint(w, `
NOTES:
  With -w each file is formatted in memory and only replaced when the whole
  file was formatted successfully.  Several files are processed in parallel.

  The -f algorithm gives the same output as the default one for valid JSON
  but does not detect most errors.  It does not colorize output.
`)
}
