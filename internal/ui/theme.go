package ui

import "github.com/charmbracelet/lipgloss"

// Palette — true-color hex values.
const (
	colorGreen  lipgloss.Color = "#a6e3a1"
	colorYellow lipgloss.Color = "#f9e2af"
	colorRed    lipgloss.Color = "#f38ba8"
	colorBlue   lipgloss.Color = "#89b4fa"
	colorText   lipgloss.Color = "#cdd6f4"
	colorMuted  lipgloss.Color = "#6c7086"
	colorFaint  lipgloss.Color = "#45475a"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	dateStyle   = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed)

	doneStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	exemptStyle  = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	pendingStyle = lipgloss.NewStyle().Foreground(colorText)

	progressFillStyle = lipgloss.NewStyle().Foreground(colorGreen)
	progressRestStyle = lipgloss.NewStyle().Foreground(colorFaint)

	// Calendar cells by day classification.
	cellCompleteStyle = lipgloss.NewStyle().Foreground(colorGreen)
	cellPartialStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	cellPoorStyle     = lipgloss.NewStyle().Foreground(colorRed)
	cellQuietStyle    = lipgloss.NewStyle().Foreground(colorFaint)
)

// badgeStyle renders a category name on its own color.
func badgeStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}
