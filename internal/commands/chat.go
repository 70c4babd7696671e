package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/geminichat/internal/chat"
)

func newChatCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with Gemini.

Each message is sent on its own; the conversation is kept on screen only
and is gone when you quit. Type 'exit', 'quit', or press Ctrl+C to end the
session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd, opts)
			if err != nil {
				return err
			}
			return runChat(deps, s)
		},
	}
}

func runChat(deps *Dependencies, s *settings) error {
	logger := deps.logger(s)
	defer func() { _ = logger.Sync() }()

	client := deps.client(s, logger)
	defer func() { _ = client.Close() }()

	session := chat.NewSession(client, s.variant, chat.WithLogger(logger))
	logger.Info("chat started",
		zap.String("session", session.ID()),
		zap.String("model", s.model.Name),
		zap.Bool("json_output", s.jsonOutput),
	)

	return deps.TUI.RunChat(session, s.model.Name, s.renderOpts)
}
