package commands

import (
	"os"

	"golang.org/x/term"
)

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// cardWidth clamps the terminal width to a readable card size
func cardWidth(termWidth int) int {
	width := termWidth - 4
	if width < 40 {
		width = 40
	}
	if width > 100 {
		width = 100
	}
	return width
}
