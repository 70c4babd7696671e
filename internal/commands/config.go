package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/diogo/geminichat/internal/config"
)

// effectiveConfig is what `config` prints: the merged settings plus where
// they came from. The key itself is never printed.
type effectiveConfig struct {
	config.Config `yaml:",inline"`

	Model           string   `yaml:"model"`
	AvailableModels []string `yaml:"available_models"`
	JSONOutput      bool     `yaml:"json_output"`
	APIKey          string   `yaml:"api_key"`
	ConfigPath      string   `yaml:"config_path"`
	LogPath         string   `yaml:"log_path"`
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration geminichat would use, after merging the config
file, the environment and command-line flags, as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd, opts)
			if err != nil {
				return err
			}

			out, err := renderEffectiveConfig(s)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
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

	configCmd.AddCommand(newConfigInitCmd())

	return configCmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}

			if err := config.SaveConfig(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return initCmd
}

// renderEffectiveConfig marshals the resolved settings as YAML
func renderEffectiveConfig(s *settings) (string, error) {
	eff := effectiveConfig{
		Config:     s.cfg,
		Model:           s.model.Name,
		AvailableModels: config.AvailableModels(),
		JSONOutput:      s.jsonOutput,
		APIKey:          "not set",
	}
	if s.apiKey != "" {
		eff.APIKey = "set"
	}

	if path, err := config.GetConfigPath(); err == nil {
		eff.ConfigPath = path
	}
	if path, err := config.GetLogPath(s.cfg.Log); err == nil {
		eff.LogPath = path
	}

	data, err := yaml.Marshal(eff)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}
