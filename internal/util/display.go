package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Terminal colors
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorBold   = "\033[1m"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of f, or fallback when unknown
func TerminalWidth(f *os.File, fallback int) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// GetDisplayWidth calculates the display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads s with spaces to the given display width
func PadRight(s string, width int) string {
	w := GetDisplayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Truncate shortens s to the given display width, adding an ellipsis
func Truncate(s string, width int) string {
	if GetDisplayWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Colorize wraps text in color when enabled
func Colorize(text, color string, enabled bool) string {
	if !enabled || color == "" {
		return text
	}
	return fmt.Sprintf("%s%s%s", color, text, ColorReset)
}
