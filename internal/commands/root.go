// Package commands provides CLI commands for geminichat.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/models"
	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootOptions holds the flag values of one command tree
type rootOptions struct {
	// Global flags
	model      string
	variant    string
	theme      string
	jsonOutput bool

	// One-shot flags
	output string
	file   string
	raw    bool
	copy   bool
}

// settings is the effective configuration after flags, env and config file
type settings struct {
	cfg        config.Config
	model      models.Model
	variant    chat.Variant
	jsonOutput bool
	apiKey     string
	renderOpts render.Options
}

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "geminichat [prompt]",
		Short: "Terminal chat client for the Gemini API",
		Long: `geminichat sends your text to the Gemini generative-language API and
shows the answer in a scrolling conversation.

The API key is read from GEMINI_AI_KEY (or GEMINI_API_KEY), optionally
loaded from a .env file in the working directory or ~/.geminichat.

Examples:
  geminichat chat                       Start interactive chat
  geminichat chat --variant bold        Chat with **bold** emphasis and JSON output
  geminichat "What is Go?"              Send a single query
  geminichat -f prompt.md               Read prompt from file
  cat prompt.md | geminichat            Read prompt from stdin
  geminichat "Hello" -o response.md     Save response to file`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "geminichat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			prompt, ok, err := readPrompt(cmd, opts, args)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}

			s, err := resolveSettings(cmd, opts)
			if err != nil {
				return err
			}
			return runQuery(cmd, deps, s, opts, prompt)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.model, "model", "m", "",
		fmt.Sprintf("Model to use (%s)", strings.Join(config.AvailableModels(), ", ")))
	rootCmd.PersistentFlags().StringVar(&opts.variant, "variant", "",
		fmt.Sprintf("Chat variant (%s)", strings.Join(chat.VariantNames(), ", ")))
	rootCmd.PersistentFlags().StringVar(&opts.theme, "theme", "",
		fmt.Sprintf("TUI theme (%s)", strings.Join(render.TUIThemeNames(), ", ")))
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Request JSON output from the model")

	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the response text")
	rootCmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the response to the clipboard")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(newChatCmd(deps, opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(NewDependencies()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.FormatError(err))
		os.Exit(1)
	}
}

// readPrompt returns the prompt from --file, the positional argument or
// piped stdin, in that order. ok is false when there is no input at all.
// Trailing line breaks of file and stdin input are dropped; the argument is
// sent as given.
func readPrompt(cmd *cobra.Command, opts *rootOptions, args []string) (string, bool, error) {
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	if in, piped := stdinReader(cmd); piped {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", false, nil
		}
		return strings.TrimRight(string(data), "\r\n"), true, nil
	}

	return "", false, nil
}

// stdinReader returns the command input when it is piped rather than a terminal
func stdinReader(cmd *cobra.Command) (io.Reader, bool) {
	in := cmd.InOrStdin()
	f, ok := in.(*os.File)
	if !ok {
		// Injected reader (tests)
		return in, true
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, false
	}
	return f, (stat.Mode() & os.ModeCharDevice) == 0
}

// resolveSettings merges defaults, config file, environment and flags.
// Flags win over env, env over the config file.
func resolveSettings(cmd *cobra.Command, opts *rootOptions) (*settings, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
	}
	config.LoadEnv()

	s := &settings{
		cfg:        cfg,
		apiKey:     config.APIKey(),
		renderOpts: render.OptionsFromConfig(cfg.Markdown),
	}

	if style := s.renderOpts.Style; !render.IsBuiltinStyle(style) {
		if _, err := os.Stat(style); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: markdown style %q is neither a built-in style nor a file, using %s\n",
				style, render.StyleDark)
			s.renderOpts.Style = render.StyleDark
		}
	}

	modelName := cfg.DefaultModel
	if opts.model != "" {
		modelName = opts.model
	}
	s.model = models.ModelFromName(modelName)

	variantName := cfg.Variant
	if opts.variant != "" {
		variantName = opts.variant
	}
	if variantName == "" {
		s.variant = chat.DefaultVariant
	} else {
		v, ok := chat.VariantByName(variantName)
		if !ok {
			return nil, fmt.Errorf("unknown variant %q (available: %s)",
				variantName, strings.Join(chat.VariantNames(), ", "))
		}
		s.variant = v
	}
	s.jsonOutput = s.variant.JSONOutput || opts.jsonOutput
	s.cfg.DefaultModel = s.model.Name
	s.cfg.Variant = s.variant.Name

	theme := cfg.TUITheme
	if opts.theme != "" {
		theme = opts.theme
	}
	if theme != "" {
		if !render.SetTUITheme(theme) {
			return nil, fmt.Errorf("unknown theme %q (available: %s)",
				theme, strings.Join(render.TUIThemeNames(), ", "))
		}
		tui.UpdateTheme()
		s.cfg.TUITheme = theme
	}

	return s, nil
}
