package cli

import (
	"fmt"
	"io"
)

// IO handles command input and output.
type IO struct {
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	interactive bool
}

// NewIO creates a new IO instance. in may be nil when the command has no
// input source; interactive reports whether in is a real terminal (prompts
// are only offered then).
func NewIO(in io.Reader, out, errOut io.Writer, interactive bool) *IO {
	return &IO{in: in, out: out, errOut: errOut, interactive: interactive}
}

// In returns the command's input stream, or nil when there is none.
func (o *IO) In() io.Reader {
	return o.in
}

// Interactive reports whether stdin is an interactive terminal.
func (o *IO) Interactive() bool {
	return o.interactive
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}
