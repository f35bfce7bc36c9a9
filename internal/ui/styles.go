package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette. ANSI 16-colour codes match what most terminal themes render as
// plain green, red and grey.
var (
	ColorConfirmed = lipgloss.Color("2")
	ColorDismissed = lipgloss.Color("1")
	ColorMuted     = lipgloss.Color("8")
)

// Styles holds the lipgloss styles used by Render.
type Styles struct {
	Normal    lipgloss.Style
	Confirmed lipgloss.Style
	Dismissed lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	OK        lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles builds styles bound to r, so the colour profile follows the
// renderer's output rather than the process's stdout.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Normal:    r.NewStyle(),
		Confirmed: r.NewStyle().Foreground(ColorConfirmed),
		Dismissed: r.NewStyle().Foreground(ColorDismissed),
		Muted:     r.NewStyle().Foreground(ColorMuted),
		Bold:      r.NewStyle().Bold(true),
		OK:        r.NewStyle().Bold(true).Foreground(ColorConfirmed),
		Error:     r.NewStyle().Bold(true).Foreground(ColorDismissed),
	}
}

// DefaultStyles returns styles for the default renderer (stdout).
func DefaultStyles() Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

// PlainStyles returns styles that emit no escape sequences at all.
// Used for --no-color, non-terminal output and golden tests.
func PlainStyles() Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return NewStyles(r)
}
