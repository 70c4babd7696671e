package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/diogo/geminichat/internal/api"
	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/logging"
	"github.com/diogo/geminichat/internal/models"
)

// Outcome describes what completing a submit did to the conversation
type Outcome struct {
	// Appended is true when an assistant entry was added
	Appended bool
	// Entry is the appended assistant entry, if any
	Entry models.Entry
	// Succeeded is true when the generation call returned text; the composer
	// clears its input only in that case
	Succeeded bool
	// Err is the generation failure, if any
	Err error
}

// Session owns the transcript and the loading flag of one chat screen.
// At most one generation call is outstanding at a time: Begin refuses new
// submits until Complete has run.
type Session struct {
	id         string
	generator  api.Generator
	variant    Variant
	transcript *Transcript
	logger     *zap.Logger

	mu      sync.Mutex
	loading bool
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithLogger sets the session logger
func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a session with an empty transcript
func NewSession(generator api.Generator, variant Variant, opts ...SessionOption) *Session {
	s := &Session{
		id:         uuid.NewString(),
		generator:  generator,
		variant:    variant,
		transcript: NewTranscript(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(
		zap.String("session", s.id),
		zap.String("variant", variant.Name),
	)

	return s
}

// ID returns the session identifier attached to every log line
func (s *Session) ID() string {
	return s.id
}

// Variant returns the screen variant
func (s *Session) Variant() Variant {
	return s.variant
}

// Transcript returns the conversation
func (s *Session) Transcript() *Transcript {
	return s.transcript
}

// Loading reports whether a generation call is outstanding
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Begin starts a submit: it rejects blank input and concurrent submits,
// marks the session as loading and appends the user entry right away.
// The input is stored and sent as typed; it returns the prompt to send.
func (s *Session) Begin(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", apierrors.ErrEmptyPrompt
	}
	prompt := input

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return "", apierrors.ErrBusy
	}
	s.loading = true
	s.mu.Unlock()

	s.transcript.Append(models.UserEntry(prompt))
	s.logger.Info("prompt submitted", zap.Int("chars", len(prompt)))

	return prompt, nil
}

// Generate performs the generation call for a prompt returned by Begin.
// It does not touch session state and is safe to run off the UI loop.
func (s *Session) Generate(ctx context.Context, prompt string) (string, error) {
	done := logging.LogDuration(s.logger, "generate")
	text, err := s.generator.Generate(ctx, prompt)
	done()
	return text, err
}

// Complete finishes the outstanding submit with the result of Generate.
// On success the answer is appended. On failure the error is logged and,
// under FailureFallback, the fixed fallback message is appended. Either way
// the session stops loading. Calling Complete with nothing outstanding is a
// no-op.
func (s *Session) Complete(text string, err error) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loading {
		return Outcome{}
	}
	defer func() { s.loading = false }()

	if err == nil {
		entry := models.AssistantEntry(text)
		s.transcript.Append(entry)
		return Outcome{Appended: true, Entry: entry, Succeeded: true}
	}

	s.logger.Error("generation call failed",
		zap.String("policy", s.variant.OnFailure.String()),
		zap.Error(err),
	)

	if s.variant.OnFailure == FailureFallback {
		entry := models.AssistantEntry(models.FallbackMessage)
		s.transcript.Append(entry)
		return Outcome{Appended: true, Entry: entry, Err: err}
	}

	return Outcome{Err: err}
}

// Submit runs Begin, Generate and Complete in sequence. Blank input and
// concurrent submits return an error without touching the transcript or
// calling the generator.
func (s *Session) Submit(ctx context.Context, input string) (Outcome, error) {
	prompt, err := s.Begin(input)
	if err != nil {
		return Outcome{}, err
	}

	text, genErr := s.Generate(ctx, prompt)
	return s.Complete(text, genErr), nil
}
