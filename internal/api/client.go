// Package api provides the client for the Gemini generative-language API.
package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

// Generator is the single request/response exchange the chat screen needs
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClientInterface defines the interface for Gemini client operations
type GeminiClientInterface interface {
	Generator
	GenerateContent(ctx context.Context, prompt string) (*models.ModelOutput, error)
	GetModel() models.Model
	JSONOutput() bool
	IsClosed() bool
	Close() error
}

// Ensure GeminiClient implements GeminiClientInterface
var _ GeminiClientInterface = (*GeminiClient)(nil)

// contentModel is the part of *genai.GenerativeModel the client calls
type contentModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// modelFactory builds a content model for a model name and response MIME type
type modelFactory func(ctx context.Context, name, mimeType string) (contentModel, error)

// GeminiClient is the main client for interacting with the Gemini API
type GeminiClient struct {
	apiKey     string
	model      models.Model
	jsonOutput bool
	logger     *zap.Logger

	genai    *genai.Client
	newModel modelFactory
	mu       sync.RWMutex
	closed   bool
}

// ClientOption is a function that configures the client
type ClientOption func(*GeminiClient)

// WithModel sets the model used for generation
func WithModel(model models.Model) ClientOption {
	return func(c *GeminiClient) {
		c.model = model
	}
}

// WithJSONOutput requests structured (JSON) output instead of plain text
func WithJSONOutput(enabled bool) ClientOption {
	return func(c *GeminiClient) {
		c.jsonOutput = enabled
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *GeminiClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// withModelFactory replaces the genai-backed model factory (tests only)
func withModelFactory(f modelFactory) ClientOption {
	return func(c *GeminiClient) {
		c.newModel = f
	}
}

// NewClient creates a new GeminiClient. The API key is not validated here:
// the underlying SDK client is created on the first call, so a missing key
// surfaces as a failed generation call.
func NewClient(apiKey string, opts ...ClientOption) *GeminiClient {
	client := &GeminiClient{
		apiKey: apiKey,
		model:  models.DefaultModel,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.newModel == nil {
		client.newModel = client.genaiModel
	}

	return client
}

// genaiModel is the production modelFactory
func (c *GeminiClient) genaiModel(ctx context.Context, name, mimeType string) (contentModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Close may have run since GenerateContent checked IsClosed
	if c.closed {
		return nil, apierrors.ErrClientClosed
	}

	if c.genai == nil {
		gc, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		c.genai = gc
	}

	model := c.genai.GenerativeModel(name)
	if mimeType == models.MIMETypeJSON {
		model.ResponseMIMEType = mimeType
	}
	return model, nil
}

// GetModel returns the model used for generation
func (c *GeminiClient) GetModel() models.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// JSONOutput reports whether JSON output mode is requested
func (c *GeminiClient) JSONOutput() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.jsonOutput
}

// mimeType returns the response MIME type for the current output mode
func (c *GeminiClient) mimeType() string {
	if c.JSONOutput() {
		return models.MIMETypeJSON
	}
	return models.MIMETypeText
}

// IsClosed returns whether the client is closed
func (c *GeminiClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Close releases the underlying SDK client. Calling it twice is a no-op.
func (c *GeminiClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.genai != nil {
		return c.genai.Close()
	}
	return nil
}
