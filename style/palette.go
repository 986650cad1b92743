package style

import "github.com/charmbracelet/lipgloss"

// Semantic colors used by the record renderers.
var (
	AccentColor    = lipgloss.Color("#cba6f7")
	SecondaryColor = lipgloss.Color("#b4befe")
	SuccessColor   = lipgloss.Color("#a6e3a1")
	WarningColor   = lipgloss.Color("#f9e2af")
)
