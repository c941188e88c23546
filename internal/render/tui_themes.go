// Package render provides TUI theme definitions and terminal card rendering.
package render

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary lipgloss.Color // advice heading
	Accent  lipgloss.Color // dice button
	Error   lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	// NeonTheme is the default: dark blue card, neon green accents
	NeonTheme = TUITheme{
		Name:        "neon",
		Description: "Neon - Dark blue card with neon green heading and dice",

		Background: lipgloss.Color("#1f2632"),
		Surface:    lipgloss.Color("#313a48"),
		Border:     lipgloss.Color("#4e5d73"),

		Primary: lipgloss.Color("#52ffa8"),
		Accent:  lipgloss.Color("#52ffa8"),
		Error:   lipgloss.Color("#ff6b6b"),

		Text:     lipgloss.Color("#cee3e9"),
		TextDim:  lipgloss.Color("#4e5d73"),
		TextMute: lipgloss.Color("#313a48"),
	}

	// TokyoNightTheme is based on the Tokyo Night color scheme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary: lipgloss.Color("#7aa2f7"),
		Accent:  lipgloss.Color("#bb9af7"),
		Error:   lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	// CatppuccinMochaTheme is based on Catppuccin Mocha palette
	CatppuccinMochaTheme = TUITheme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - Warm dark theme with pastel colors",

		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),

		Primary: lipgloss.Color("#a6e3a1"), // Green
		Accent:  lipgloss.Color("#cba6f7"), // Mauve
		Error:   lipgloss.Color("#f38ba8"), // Red

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),
	}

	// NordTheme is based on the Nord color palette
	NordTheme = TUITheme{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",

		Background: lipgloss.Color("#2e3440"),
		Surface:    lipgloss.Color("#3b4252"),
		Border:     lipgloss.Color("#4c566a"),

		Primary: lipgloss.Color("#a3be8c"), // Aurora green
		Accent:  lipgloss.Color("#88c0d0"), // Frost
		Error:   lipgloss.Color("#bf616a"), // Aurora red

		Text:     lipgloss.Color("#eceff4"),
		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),
	}
)

var tuiThemes = map[string]TUITheme{
	NeonTheme.Name:            NeonTheme,
	TokyoNightTheme.Name:      TokyoNightTheme,
	CatppuccinMochaTheme.Name: CatppuccinMochaTheme,
	NordTheme.Name:            NordTheme,
}

var (
	themeMu         sync.RWMutex
	currentTUITheme = NeonTheme
)

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name, case-insensitively
func GetTUIThemeByName(name string) (TUITheme, bool) {
	theme, ok := tuiThemes[strings.ToLower(strings.TrimSpace(name))]
	return theme, ok
}

// TUIThemeNames returns the theme names in sorted order
func TUIThemeNames() []string {
	names := make([]string, 0, len(tuiThemes))
	for name := range tuiThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
