// Package commands provides CLI commands for advicedice.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/advicedice/internal/config"
	"github.com/diogo/advicedice/internal/tui"
)

var (
	// Global flags
	verboseFlag  bool
	logFileFlag  string
	endpointFlag string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

var (
	// appConfig is the effective configuration: file, env, then flags
	appConfig = config.DefaultConfig()

	// logger is the diagnostic channel for every command
	logger = zap.NewNop()
)

// NewRootCmd creates the root command with its subcommands
func NewRootCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advicedice",
		Short: "Roll the dice for a random piece of advice",
		Long: `advicedice fetches a random piece of advice from the Advice Slip API
and shows it on a card. Press space to roll again.

When stdout is not a terminal a single roll is printed instead.

Examples:
  advicedice                    Start the interactive card
  advicedice roll               Print one piece of advice
  advicedice roll --raw         Print the id and advice on two lines
  advicedice config set tui_theme nord`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadSettings(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "advicedice %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if !deps.isTTY() {
				return runRoll(cmd, deps, rollOptions{raw: true})
			}
			return runInteractive(deps)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log debug diagnostics")
	cmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Write diagnostics to this file instead of stderr")
	cmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Advice endpoint URL")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	cmd.AddCommand(NewRollCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings resolves configuration and builds the logger
func loadSettings(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
	}

	if verboseFlag {
		cfg.Verbose = true
	}
	if logFileFlag != "" {
		cfg.LogFile = logFileFlag
	}
	if endpointFlag != "" {
		cfg.Endpoint = endpointFlag
	}

	l, err := newLogger(cfg.Verbose, cfg.LogFile)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	logger.Debug("settings loaded",
		zap.String("endpoint", cfg.Endpoint),
		zap.Int("timeout_seconds", cfg.TimeoutSeconds),
	)
	return nil
}

// runInteractive starts the TUI. It owns the screen, so diagnostics
// go to a file even when no log file is configured.
func runInteractive(deps *Dependencies) error {
	if appConfig.LogFile == "" {
		path, err := config.DefaultLogPath()
		if err != nil {
			return err
		}
		l, err := newLogger(appConfig.Verbose, path)
		if err != nil {
			return err
		}
		logger = l
	}

	client, release, err := deps.client(appConfig, logger)
	if err != nil {
		return err
	}
	defer release()

	return deps.tui().RunAdvice(client, tui.Options{
		Theme:       appConfig.TUITheme,
		RollOnStart: appConfig.RollOnStart,
		Logger:      logger,
	})
}
