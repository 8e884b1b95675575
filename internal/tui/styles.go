package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	muted  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	activeTabStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(muted).
				Padding(0, 1)

	userStyle    = lipgloss.NewStyle().Foreground(accent).Italic(true)
	loadingStyle = lipgloss.NewStyle().Foreground(muted)
	docStyle     = lipgloss.NewStyle().Padding(1, 2)
)
