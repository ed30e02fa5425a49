// Package ui renders description documents for the view and watch commands.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Palette
	accent  = lipgloss.Color("#8BC34A") // lime green
	info    = lipgloss.Color("#2196F3") // blue
	warning = lipgloss.Color("#FFC107") // yellow
	muted   = lipgloss.Color("244")

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(muted)

	MetaLabelStyle = lipgloss.NewStyle().Foreground(info)
	MetaValueStyle = lipgloss.NewStyle().Foreground(muted)

	DirStyle     = lipgloss.NewStyle().Bold(true).Foreground(info)
	FileStyle    = lipgloss.NewStyle()
	SkippedStyle = lipgloss.NewStyle().Faint(true)
	DescStyle    = lipgloss.NewStyle().Foreground(muted)
	ChangedStyle = lipgloss.NewStyle().Bold(true).Foreground(warning)

	SpinnerStyle = lipgloss.NewStyle().Foreground(accent)
	FooterStyle  = lipgloss.NewStyle().Faint(true)
)
