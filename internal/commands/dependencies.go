package commands

import (
	"go.uber.org/zap"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/logging"
	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(session *chat.Session, modelName string, opts render.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client, when set, is used instead of building a Gemini client from
	// the resolved settings.
	Client api.GeminiClientInterface

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Logger, when set, replaces the rotating file logger.
	Logger *zap.Logger

	// Clipboard copies text for --copy and copy_to_clipboard.
	Clipboard func(text string) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(session *chat.Session, modelName string, opts render.Options) error {
	return tui.RunChat(session, modelName, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:       &DefaultTUI{},
		Clipboard: writeClipboard,
	}
}

// client returns the injected client or builds one for s
func (d *Dependencies) client(s *settings, logger *zap.Logger) api.GeminiClientInterface {
	if d.Client != nil {
		return d.Client
	}

	if s.apiKey == "" {
		logger.Warn("no API key in environment, generation calls will fail",
			zap.Strings("env", []string{"GEMINI_AI_KEY", "GEMINI_API_KEY"}),
		)
	}

	return api.NewClient(s.apiKey,
		api.WithModel(s.model),
		api.WithJSONOutput(s.jsonOutput),
		api.WithLogger(logger),
	)
}

// logger returns the injected logger or opens the rotating log file.
// A log file that cannot be opened disables logging rather than failing.
func (d *Dependencies) logger(s *settings) *zap.Logger {
	if d.Logger != nil {
		return d.Logger
	}

	logCfg := s.cfg.Log
	if s.cfg.Verbose {
		logCfg.Level = "debug"
	}

	logger, err := logging.New(logCfg)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
