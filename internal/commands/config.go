package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/advicedice/internal/config"
	"github.com/diogo/advicedice/internal/render"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change advicedice settings.

Settings are stored in ~/.advicedice/config.json.

Keys: ` + strings.Join(config.Keys(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(cmd, args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List the available TUI themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := strings.ToLower(appConfig.TUITheme)
			for _, name := range render.TUIThemeNames() {
				theme, _ := render.GetTUIThemeByName(name)
				marker := " "
				if name == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-18s %s\n", marker, name, theme.Description)
			}
			return nil
		},
	})

	return cmd
}

func showConfig(cmd *cobra.Command) error {
	data, err := json.MarshalIndent(appConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func setConfig(cmd *cobra.Command, key, value string) error {
	if key == "tui_theme" {
		if _, ok := render.GetTUIThemeByName(value); !ok {
			return fmt.Errorf("unknown theme %q (available: %s)", value, strings.Join(render.TUIThemeNames(), ", "))
		}
		value = strings.ToLower(strings.TrimSpace(value))
	}

	cfg, err := config.LoadFileConfig()
	if err != nil {
		return err
	}
	if err := config.SetValue(&cfg, key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	logger.Sugar().Debugw("config updated", "key", key, "value", value)
	fmt.Fprintln(cmd.OutOrStdout(), lipgloss.NewStyle().Foreground(colorSuccess).Render(
		fmt.Sprintf("✓ %s = %s", key, value),
	))
	return nil
}
