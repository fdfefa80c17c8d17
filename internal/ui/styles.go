package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5f9fb0"))
	sectionStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	navStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d"))
	navActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	doneTextStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("#888888"))
	selectedRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236"))
	deleteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#d16d7a"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#d16d7a")).Bold(true)
	filterStyle      = lipgloss.NewStyle().Padding(0, 1)
	filterOnStyle    = lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	focusMarkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f39c12")).Bold(true)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f9fb0"))
)
