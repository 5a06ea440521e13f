// Package color names the terminal colors hostplay renders with.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI code or a hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI codes follow the terminal's own theme.
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Blue     = New("4")
	Purple   = New("5")
	Cyan     = New("6")
	HiRed    = New("9")
	HiPurple = New("13")
)

// Orange highlights key hints and pending commands, Gray the notification line.
var (
	Orange = New("#ffb703")
	Gray   = New("#808080")
)
