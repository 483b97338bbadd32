// Package cliutil holds small helpers for writing command output.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to w. Command output is best effort, so a
// failed write is reported on stderr instead of being returned.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Writeln writes s followed by a newline to w, with the same error handling
// as Writef.
func Writeln(w io.Writer, s string) {
	Writef(w, "%s\n", s)
}
