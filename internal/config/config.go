// Package config handles configuration and environment loading for geminichat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/diogo/geminichat/internal/models"
)

const (
	configDirName  = ".geminichat"
	configFileName = "config.json"
	envFileName    = ".env"
	logFileName    = "geminichat.log"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style" yaml:"style"`                           // "dark", "light", "tokyonight", ...
	EnableEmoji      bool   `json:"enable_emoji" yaml:"enable_emoji"`             // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines" yaml:"preserve_newlines"`   // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap" yaml:"table_wrap"`                 // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links" yaml:"inline_table_links"` // Render links inline in tables
}

// LogConfig configures the rotating log file
type LogConfig struct {
	// File overrides the log path. Empty means ~/.geminichat/logs/geminichat.log.
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	Level      string `json:"level" yaml:"level"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `json:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `json:"compress" yaml:"compress"`
}

// Config represents the user configuration
type Config struct {
	DefaultModel string `json:"default_model" yaml:"default_model"`
	// Variant selects the chat screen preset: classic, bold or markdown.
	Variant string `json:"variant" yaml:"variant"`
	// Verbose raises the log level to debug and prints request timing
	// in one-shot mode.
	Verbose         bool           `json:"verbose" yaml:"verbose"`
	CopyToClipboard bool           `json:"copy_to_clipboard" yaml:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty" yaml:"tui_theme,omitempty"` // TUI color theme
	Markdown        MarkdownConfig `json:"markdown,omitempty" yaml:"markdown"`
	Log             LogConfig      `json:"log,omitempty" yaml:"log"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultLogConfig returns the default log rotation settings
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Compress:   false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		DefaultModel:    models.DefaultModel.Name,
		Variant:         "classic",
		Verbose:         false,
		CopyToClipboard: false,
		TUITheme:        "gemini",
		Markdown:        DefaultMarkdownConfig(),
		Log:             DefaultLogConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, configDirName), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the directory may hold a .env with the API key
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
	return filepath.Join(configDir, configFileName), nil
}

// GetLogPath returns the log file path for cfg, falling back to the
// default location under the config directory
func GetLogPath(cfg LogConfig) (string, error) {
	if cfg.File != "" {
		return cfg.File, nil
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "logs", logFileName), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, configFileName)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads a .env file from the working directory and then one from
// the config directory. Variables already set in the environment win, and
// missing files are ignored.
func LoadEnv() {
	_ = godotenv.Load()

	if dir, err := GetConfigDir(); err == nil {
		_ = godotenv.Load(filepath.Join(dir, envFileName))
	}
}

// APIKey returns the Gemini API key from the environment. It is not
// validated: an empty key surfaces as a failed generation call.
func APIKey() string {
	if key := os.Getenv(models.EnvAPIKey); key != "" {
		return key
	}
	return os.Getenv(models.EnvAPIKeyFallback)
}

// AvailableModels returns a list of available model names
func AvailableModels() []string {
	all := models.AllModels()
	names := make([]string, 0, len(all))
	for _, m := range all {
		names = append(names, m.Name)
	}
	return names
}
