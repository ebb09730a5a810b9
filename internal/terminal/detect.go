// Package terminal reports whether devstarter is attached to an interactive terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal or its size is unknown.
const DefaultWidth = 80

var (
	isTerminalFunc = term.IsTerminal
	getSizeFunc    = term.GetSize
)

// IsInteractive reports whether stdin and stdout are both terminals. The setup
// form and the progress view need both.
func IsInteractive() bool {
	return isTerminalFunc(int(os.Stdin.Fd())) && isTerminalFunc(int(os.Stdout.Fd()))
}

// Width returns the column count of the terminal on f, or DefaultWidth.
func Width(f *os.File) int {
	if f == nil || !isTerminalFunc(int(f.Fd())) {
		return DefaultWidth
	}
	w, _, err := getSizeFunc(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
