// Package color provides a curated palette of colors.
package color

import "github.com/charmbracelet/lipgloss"

// Standard ANSI 8-color palette.
var (
	Red    = lipgloss.Color("1")
	Green  = lipgloss.Color("2")
	Yellow = lipgloss.Color("3")
	Blue   = lipgloss.Color("4")
	Purple = lipgloss.Color("5")
	Cyan   = lipgloss.Color("6")
)

// High-intensity extension.
var (
	HiPurple = lipgloss.Color("13")
	HiCyan   = lipgloss.Color("14")
)
