package api

import (
	"context"
	"sync"

	"github.com/diogo/geminichat/internal/models"
)

// MockGeminiClient is a mock implementation of GeminiClientInterface for testing
type MockGeminiClient struct {
	// Mock return values
	Model         models.Model
	JSONOutputVal bool
	GenerateVal   string
	GenerateErr   error
	CloseErr      error

	// GenerateFunc, when set, replaces GenerateVal/GenerateErr
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	mu          sync.Mutex
	calls       int
	prompts     []string
	closeCalled bool
}

// Ensure MockGeminiClient implements GeminiClientInterface
var _ GeminiClientInterface = (*MockGeminiClient)(nil)

func (m *MockGeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return m.GenerateVal, m.GenerateErr
}

func (m *MockGeminiClient) GenerateContent(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	text, err := m.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &models.ModelOutput{
		Model:      m.Model.Name,
		Candidates: []models.Candidate{{Text: text}},
	}, nil
}

func (m *MockGeminiClient) GetModel() models.Model {
	return m.Model
}

func (m *MockGeminiClient) JSONOutput() bool {
	return m.JSONOutputVal
}

func (m *MockGeminiClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalled
}

func (m *MockGeminiClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalled = true
	return m.CloseErr
}

// Calls returns how many times Generate was invoked
func (m *MockGeminiClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Prompts returns every prompt received, in order
func (m *MockGeminiClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// LastPrompt returns the most recent prompt, or ""
func (m *MockGeminiClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
