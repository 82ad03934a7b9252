package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#cba6f7"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
)
