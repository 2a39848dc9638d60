// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

var (
	stdin  = os.Stdin
	stderr = os.Stderr
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsInteractive reports whether stdin and stderr are both terminals.
// Prompts and progress output render on stderr so stdout stays pipeable.
func IsInteractive() bool {
	return IsTerminal(stdin) && IsTerminal(stderr)
}
