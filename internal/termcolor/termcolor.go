// Package termcolor provides the CLI's colored status output. Colors are
// dropped automatically when the writer is not a terminal or NO_COLOR is
// set; the text itself is unchanged either way.
package termcolor

import (
	"io"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

// Success prints a green success line.
func Success(w io.Writer, format string, a ...any) {
	_, _ = green.Fprintf(w, format+"\n", a...)
}

// Warn prints a yellow warning line prefixed with "warning:".
func Warn(w io.Writer, format string, a ...any) {
	_, _ = yellow.Fprintf(w, "warning: "+format+"\n", a...)
}

// Error prints a red error line prefixed with "error:".
func Error(w io.Writer, format string, a ...any) {
	_, _ = red.Fprintf(w, "error: "+format+"\n", a...)
}
