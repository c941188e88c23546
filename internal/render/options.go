package render

import (
	"os"

	"github.com/diogo/advicedice/internal/config"
)

// Options configures the card renderer behavior.
type Options struct {
	// Width defines the maximum output width (default: 60)
	Width int

	// Style is a glamour standard style ("dark", "light", "notty", ...)
	// or a path to a JSON style file
	Style string
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width: 60,
		Style: "dark",
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	if width > 0 {
		o.Width = width
	}
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	if style != "" {
		o.Style = style
	}
	return o
}

// OptionsFromConfig builds render options from user configuration.
// GLAMOUR_STYLE takes precedence over the configured style.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions().
		WithStyle(cfg.Markdown.Style).
		WithWidth(cfg.Markdown.Width)

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}
