// Package style holds the lipgloss renderers used for CLI output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kurasora/kurasora/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer painting text with c.
func Fg(c lipgloss.Color) func(string) string {
	s := New().Foreground(c)
	return func(text string) string { return s.Render(text) }
}

var (
	faint = New().Faint(true)
	bold  = New().Bold(true)
	title = New().Foreground(color.TitleFg).Background(color.TitleBg).Padding(0, 1)
)

func Faint(s string) string { return faint.Render(s) }

func Bold(s string) string { return bold.Render(s) }

// Title renders a padded heading block, used for result names and sections.
func Title(s string) string { return title.Render(s) }
