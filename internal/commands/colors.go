package commands

import "github.com/charmbracelet/lipgloss"

// Color constants for tickle output
const (
	colorPrimaryText   = "#E6EAF2" // titles
	colorSecondaryText = "#B1B8C7" // metadata - subtle purple-tinted grey
	colorDisabledText  = "#6D7383" // completed/deleted rows

	colorAccentMain = "#7C3AED" // headers, accents

	colorError   = "#EF4444" // errors
	colorSuccess = "#22C55E" // confirmations
	colorWarning = "#F59E0B" // warnings (ephemeral store, overdue)
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccentMain))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimaryText))
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondaryText))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDisabledText)).Strikethrough(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarning))
)
