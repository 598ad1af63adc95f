// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// This file defines the shared lipgloss styles used across the views.
package tui

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used in the TUI.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // Teal
	colorSpecial   = lipgloss.Color("208") // Orange, used for warnings
	colorError     = lipgloss.Color("196")
	colorSuccess   = lipgloss.Color("40")
	colorWhite     = lipgloss.Color("231")
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	helpStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	specialStyle = lipgloss.NewStyle().Foreground(colorSpecial).Bold(true)

	mainTitleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(1, 3)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(0, 0, 1, 0)

	itemStyle         = lipgloss.NewStyle()
	selectedItemStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	formLabelStyle        = lipgloss.NewStyle().Foreground(colorSubtle)
	formSelectedItemStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorHighlight).
			Padding(1, 2).
			Width(60)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("237")). // Dark gray
			Padding(0, 3).
			MarginTop(1)

	activeButtonStyle = buttonStyle.
				Background(colorHighlight).
				Foreground(colorWhite).
				Underline(true)

	statusMessageStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorWhite).
				Background(colorHighlight)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Italic(true)
)
