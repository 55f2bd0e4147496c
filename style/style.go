// Package style provides a functional API for composing lipgloss-based CLI styles.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tmessages/buildvars/color"
)

// New returns an empty lipgloss.Style used as a foundation for visual composition.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored initializes a new style with the specified foreground and background colors.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a rendering function that applies the specified foreground color to a string.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Box frames s in a rounded border tinted with c.
func Box(c lipgloss.Color, s string) string {
	return New().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 1).
		Render(s)
}

// Status renders "on" in green or "off" in red.
func Status(on bool) string {
	if on {
		return Fg(color.Green)("on")
	}
	return Fg(color.Red)("off")
}
