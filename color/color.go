// Package color is the ANSI palette of the CLI output.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Base palette, used for status and metadata.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
)

// Bright variants for headings.
var (
	HiRed    = New("9")
	HiBlue   = New("12")
	HiPurple = New("13")
)

// Title block colors.
var (
	TitleFg = New("230")
	TitleBg = New("62")
)
