// Package config handles configuration for advicedice.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/diogo/advicedice/internal/models"
)

// EnvEndpoint overrides the configured advice endpoint
const EnvEndpoint = "ADVICEDICE_ENDPOINT"

// MarkdownConfig configures how the advice card is rendered in the terminal
type MarkdownConfig struct {
	Style string `json:"style"` // "dark", "light", "notty", or path to JSON theme
	Width int    `json:"width"` // 0 = fit terminal
}

// Config represents the user configuration
type Config struct {
	Endpoint string `json:"endpoint"`
	// TimeoutSeconds bounds one request. 0 disables the timeout.
	TimeoutSeconds int  `json:"timeout_seconds"`
	Verbose        bool `json:"verbose"`
	// LogFile receives diagnostics. The TUI always logs to a file.
	LogFile         string         `json:"log_file,omitempty"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	RollOnStart     bool           `json:"roll_on_start"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style: "dark",
		Width: 0,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:        models.EndpointAdvice,
		TimeoutSeconds:  0,
		Verbose:         false,
		CopyToClipboard: false,
		RollOnStart:     true,
		TUITheme:        "neon",
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".advicedice"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// DefaultLogPath returns the log file used when none is configured
func DefaultLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "advicedice.log"), nil
}

// LoadConfig loads the configuration from disk and applies environment
// overrides
func LoadConfig() (Config, error) {
	cfg, err := LoadFileConfig()
	return applyEnv(cfg), err
}

// LoadFileConfig loads the configuration file alone. Defaults are returned
// when the file does not exist.
func LoadFileConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = models.EndpointAdvice
	}

	return cfg, nil
}

// applyEnv applies environment overrides
func applyEnv(cfg Config) Config {
	if endpoint := os.Getenv(EnvEndpoint); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	return cfg
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setters maps config keys to functions applying a string value
var setters = map[string]func(cfg *Config, value string) error{
	"endpoint": func(cfg *Config, value string) error {
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("endpoint must be an http(s) URL")
		}
		cfg.Endpoint = value
		return nil
	},
	"timeout_seconds": func(cfg *Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("timeout_seconds must be a non-negative integer")
		}
		cfg.TimeoutSeconds = n
		return nil
	},
	"verbose": boolSetter(func(cfg *Config, v bool) { cfg.Verbose = v }),
	"log_file": func(cfg *Config, value string) error {
		cfg.LogFile = value
		return nil
	},
	"copy_to_clipboard": boolSetter(func(cfg *Config, v bool) { cfg.CopyToClipboard = v }),
	"roll_on_start":     boolSetter(func(cfg *Config, v bool) { cfg.RollOnStart = v }),
	"tui_theme": func(cfg *Config, value string) error {
		cfg.TUITheme = value
		return nil
	},
	"markdown.style": func(cfg *Config, value string) error {
		cfg.Markdown.Style = value
		return nil
	},
	"markdown.width": func(cfg *Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("markdown.width must be a non-negative integer")
		}
		cfg.Markdown.Width = n
		return nil
	},
}

func boolSetter(apply func(cfg *Config, v bool)) func(cfg *Config, value string) error {
	return func(cfg *Config, value string) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", value)
		}
		apply(cfg, v)
		return nil
	}
}

// SetValue sets a single configuration key from its string form
func SetValue(cfg *Config, key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := set(cfg, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

// Keys returns the settable configuration keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
