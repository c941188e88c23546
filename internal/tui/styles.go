// Package tui provides the terminal user interface for advicedice.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/advicedice/internal/render"
)

// Color variables (updated from theme)
var (
	colorSurface  lipgloss.Color
	colorBorder   lipgloss.Color
	colorPrimary  lipgloss.Color
	colorAccent   lipgloss.Color
	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	cardStyle        lipgloss.Style
	headingStyle     lipgloss.Style
	adviceStyle      lipgloss.Style
	placeholderStyle lipgloss.Style
	dividerStyle     lipgloss.Style
	diceStyle        lipgloss.Style
	diceActiveStyle  lipgloss.Style
	loadingStyle     lipgloss.Style
	feedbackStyle    lipgloss.Style
	helpStyle        lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorAccent = theme.Accent
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

func rebuildStyles() {
	cardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 4).
		Align(lipgloss.Center)

	headingStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	adviceStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true).
		MarginTop(1).
		MarginBottom(1).
		Align(lipgloss.Center)

	placeholderStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true).
		MarginTop(1).
		MarginBottom(1).
		Align(lipgloss.Center)

	dividerStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	diceStyle = lipgloss.NewStyle().
		Foreground(colorSurface).
		Background(colorAccent).
		Bold(true).
		Padding(0, 2).
		MarginTop(1)

	diceActiveStyle = diceStyle.
		Foreground(colorAccent).
		Background(colorSurface)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	feedbackStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	helpStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		MarginTop(1)
}
