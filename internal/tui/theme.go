package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette and styles for the chat.
type Theme struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Muted   lipgloss.Color

	TitleStyle      lipgloss.Style
	UserStyle       lipgloss.Style
	AssistantStyle  lipgloss.Style
	ErrorStyle      lipgloss.Style
	SuggestionStyle lipgloss.Style
	StatusStyle     lipgloss.Style
	ViewportStyle   lipgloss.Style
}

// DefaultTheme returns a theme with default colors and styles.
func DefaultTheme() *Theme {
	theme := &Theme{
		Primary: lipgloss.Color("#FFD966"),
		Success: lipgloss.Color("#FFB000"),
		Warning: lipgloss.Color("#FFB000"),
		Danger:  lipgloss.Color("#FF5F5F"),
		Muted:   lipgloss.Color("#805800"),
	}

	theme.TitleStyle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	theme.UserStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00A6FF")).
		Bold(true)

	theme.AssistantStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF"))

	theme.ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Danger).
		Bold(true)

	theme.SuggestionStyle = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	theme.StatusStyle = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1)

	theme.ViewportStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Muted).
		Padding(0, 1)

	return theme
}
