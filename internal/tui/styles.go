package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	cursorStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	previewLabelStyle = lipgloss.NewStyle().Bold(true)
	previewOldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	previewNewStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)
