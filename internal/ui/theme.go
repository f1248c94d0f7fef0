package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#FF6600")

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(accent)

	LoadingTextStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#CCCCCC"))

	EmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#828282")).
			Italic(true)
)
