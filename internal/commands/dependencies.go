package commands

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/diogo/advicedice/internal/api"
	"github.com/diogo/advicedice/internal/config"
	"github.com/diogo/advicedice/internal/fetcher"
	"github.com/diogo/advicedice/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunAdvice(source fetcher.Source, opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client is the advice API client. When nil, one is built from config.
	Client api.AdviceClientInterface

	// TUI is the terminal user interface.
	TUI TUIInterface

	// IsTTY reports whether stdout is a terminal.
	IsTTY func() bool

	// Copy writes text to the system clipboard.
	Copy func(string) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunAdvice(source fetcher.Source, opts tui.Options) error {
	return tui.Run(source, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:   &DefaultTUI{},
		IsTTY: isStdoutTTY,
		Copy:  clipboard.WriteAll,
	}
}

// client returns the injected client or builds one from cfg. The release
// func closes a built client and leaves an injected one open.
func (d *Dependencies) client(cfg config.Config, logger *zap.Logger) (api.AdviceClientInterface, func(), error) {
	if d != nil && d.Client != nil {
		return d.Client, func() {}, nil
	}

	c, err := api.NewClient(
		api.WithEndpoint(cfg.Endpoint),
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, c.Close, nil
}

func (d *Dependencies) isTTY() bool {
	if d == nil || d.IsTTY == nil {
		return false
	}
	return d.IsTTY()
}

func (d *Dependencies) copy(text string) error {
	if d == nil || d.Copy == nil {
		return clipboard.WriteAll(text)
	}
	return d.Copy(text)
}

func (d *Dependencies) tui() TUIInterface {
	if d == nil || d.TUI == nil {
		return &DefaultTUI{}
	}
	return d.TUI
}
