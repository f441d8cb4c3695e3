package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Colors for diagnostic output.
const (
	Bold   = CSI + "1m"
	Red    = CSI + "31m"
	Yellow = CSI + "33m"
	Blue   = CSI + "34m"
)

// Diagnostics is where user-facing messages go. Standard output is
// reserved for the selected entry.
var Diagnostics io.Writer = os.Stderr

// Prefix identifies the tool in diagnostic messages.
var Prefix = "smenu"

// colorDiagnostics is true when Diagnostics is a terminal.
var colorDiagnostics = term.IsTerminal(int(os.Stderr.Fd()))

func report(color, msg string) {
	if !colorDiagnostics {
		fmt.Fprintf(Diagnostics, "%s: %s\n", Prefix, msg)
		return
	}
	fmt.Fprintf(Diagnostics, "%s%s%s:%s %s\n", Bold, color, Prefix, ResetStyle, msg)
}

// Error prints an error message.
func Error(msg string) {
	report(Red, msg)
}

// Warning prints a warning message.
func Warning(msg string) {
	report(Yellow, msg)
}

// Info prints an informational message.
func Info(msg string) {
	report(Blue, msg)
}
