// Package style renders terminal text with lipgloss.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hostplay/hostplay/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg renders text in c.
func Fg(c lipgloss.Color) func(string) string {
	s := New().Foreground(c)
	return func(text string) string { return s.Render(text) }
}

// Truncate lays text out on width columns.
func Truncate(width int) func(string) string {
	s := New().Width(width)
	return func(text string) string { return s.Render(text) }
}

var (
	faint = New().Faint(true)
	bold  = New().Bold(true)
	title = New().Foreground(color.New("230")).Background(color.New("62")).Padding(0, 1)
)

func Faint(text string) string { return faint.Render(text) }

func Bold(text string) string { return bold.Render(text) }

// Title renders a header badge.
func Title(text string) string { return title.Render(text) }
