package ui

import "github.com/charmbracelet/lipgloss"

// Apple Music red for titles, muted gray for help text.
var styles = struct {
	title lipgloss.Style
	err   lipgloss.Style
	help  lipgloss.Style
}{
	title: lipgloss.NewStyle().Foreground(lipgloss.Color("#FC3C44")).Bold(true).MarginBottom(1),
	err:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F56")).Bold(true),
	help:  lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
}
