package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/diogo/advicedice/internal/fetcher"
	"github.com/diogo/advicedice/internal/render"
)

// Options configures the interactive card
type Options struct {
	Theme       string
	RollOnStart bool
	Logger      *zap.Logger
}

// newFetcher wires an AdviceFetcher whose regions post into out
func newFetcher(source fetcher.Source, out sender, logger *zap.Logger) *fetcher.AdviceFetcher {
	return fetcher.New(
		source,
		programRegion{kind: regionID, out: out},
		programRegion{kind: regionAdvice, out: out},
		fetcher.WithLogger(logger),
	)
}

// Run starts the interactive advice card and blocks until the user quits
func Run(source fetcher.Source, opts Options) error {
	if opts.Theme != "" {
		if !render.SetTUITheme(opts.Theme) {
			return fmt.Errorf("unknown theme %q", opts.Theme)
		}
		UpdateTheme()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	out := &programSender{}
	f := newFetcher(source, out, logger)

	p := tea.NewProgram(NewModel(f, opts.RollOnStart), tea.WithAltScreen())
	out.attach(p)

	// Activations still running after quit post into a stopped program,
	// which drops them.
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
