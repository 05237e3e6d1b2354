// Package terminal reports what the attached terminal can show.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the width and height of the terminal behind f.
// Falls back to defaults if f is not a terminal.
func GetSize(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the width of the terminal behind f
func GetWidth(f *os.File) int {
	width, _ := GetSize(f)
	return width
}

// IsTerminal returns true if f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
