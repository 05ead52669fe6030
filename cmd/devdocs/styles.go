package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Terminal styles for user-facing command output
var (
	styleHeading = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	styleSuccess = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	styleWarn = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleURL = lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("39"))
)
