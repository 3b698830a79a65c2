package ui

import "github.com/charmbracelet/lipgloss"

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#bb9af7")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
)
