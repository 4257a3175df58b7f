package ui

import "github.com/charmbracelet/lipgloss"

// Styling shared by the console logger, the command output and the TUI
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Bold(true).
			Padding(0, 2).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	// DebugStyle and FieldStyle are dimmed so log lines stay readable.
	DebugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	FieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	ProcessingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)
