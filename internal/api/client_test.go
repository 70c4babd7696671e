package api

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

// fakeModel records calls and returns a canned response
type fakeModel struct {
	mu     sync.Mutex
	resp   *genai.GenerateContentResponse
	err    error
	parts  []genai.Part
	called int
}

func (f *fakeModel) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called++
	f.parts = parts
	return f.resp, f.err
}

// textResponse builds a single-candidate response
func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]genai.Part, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, genai.Text(t))
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: "model", Parts: parts},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

// newTestClient wires a fake model into a client and records factory args
func newTestClient(fm *fakeModel, opts ...ClientOption) (*GeminiClient, *[]string) {
	var requested []string
	factory := func(ctx context.Context, name, mimeType string) (contentModel, error) {
		requested = append(requested, name+"|"+mimeType)
		return fm, nil
	}
	opts = append(opts, withModelFactory(factory))
	return NewClient("test-key", opts...), &requested
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("")

	if c.GetModel().Name != models.DefaultModel.Name {
		t.Errorf("expected default model %s, got %s", models.DefaultModel.Name, c.GetModel().Name)
	}
	if c.JSONOutput() {
		t.Error("JSON output should be off by default")
	}
	if c.IsClosed() {
		t.Error("new client should not be closed")
	}
	if c.newModel == nil {
		t.Error("model factory should default to genai")
	}
}

func TestNewClient_Options(t *testing.T) {
	c := NewClient("k",
		WithModel(models.Model15Pro),
		WithJSONOutput(true),
		WithLogger(nil),
	)

	if c.GetModel().Name != "gemini-1.5-pro" {
		t.Errorf("WithModel not applied: %s", c.GetModel().Name)
	}
	if !c.JSONOutput() {
		t.Error("WithJSONOutput not applied")
	}
	if c.logger == nil {
		t.Error("WithLogger(nil) must keep the default logger")
	}
}

func TestGenerate_Success(t *testing.T) {
	fm := &fakeModel{resp: textResponse("Hello, ", "world")}
	c, requested := newTestClient(fm)

	text, err := c.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if text != "Hello, world" {
		t.Errorf("Generate() = %q, want %q", text, "Hello, world")
	}
	if fm.called != 1 {
		t.Errorf("expected exactly one API call, got %d", fm.called)
	}
	if len(fm.parts) != 1 || fm.parts[0] != genai.Text("hi") {
		t.Errorf("prompt not sent as a single text part: %v", fm.parts)
	}
	if len(*requested) != 1 || (*requested)[0] != "gemini-1.5-flash|text/plain" {
		t.Errorf("unexpected model request: %v", *requested)
	}
}

func TestGenerate_JSONMode(t *testing.T) {
	fm := &fakeModel{resp: textResponse(`{"answer": "**Go** is fun"}`)}
	c, requested := newTestClient(fm, WithJSONOutput(true))

	text, err := c.Generate(context.Background(), "tell me")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if text != "**Go** is fun" {
		t.Errorf("Generate() = %q", text)
	}
	if (*requested)[0] != "gemini-1.5-flash|application/json" {
		t.Errorf("JSON mode should request application/json, got %v", *requested)
	}
}

func TestGenerate_JSONModeEmptyAnswer(t *testing.T) {
	for _, raw := range []string{`{"text": ""}`, `{"answer": "   "}`, `""`} {
		t.Run(raw, func(t *testing.T) {
			c, _ := newTestClient(&fakeModel{resp: textResponse(raw)}, WithJSONOutput(true))

			text, err := c.Generate(context.Background(), "hi")
			if !apierrors.IsNoContent(err) {
				t.Errorf("expected ErrNoContent, got text %q, err %v", text, err)
			}
			if !apierrors.IsGenerationError(err) {
				t.Errorf("blank JSON answer should be a generation failure, got %v", err)
			}
		})
	}
}

func TestGenerate_APIError(t *testing.T) {
	cause := errors.New("googleapi: Error 400: API key not valid")
	fm := &fakeModel{err: cause}

	core, logs := observer.New(zap.WarnLevel)
	c, _ := newTestClient(fm, WithLogger(zap.New(core)))

	_, err := c.Generate(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apierrors.IsGenerationError(err) {
		t.Errorf("expected generation error, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Error("generation error should wrap the SDK error")
	}
	if fm.called != 1 {
		t.Errorf("failed call must not be retried, got %d calls", fm.called)
	}
	if logs.FilterMessage("generation call failed").Len() != 1 {
		t.Error("expected the failure to be logged")
	}
}

func TestGenerate_NoContent(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}}},
		{"blank text", textResponse("   ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(&fakeModel{resp: tt.resp})

			_, err := c.Generate(context.Background(), "hi")
			if !apierrors.IsNoContent(err) {
				t.Errorf("expected ErrNoContent, got %v", err)
			}
			if !apierrors.IsGenerationError(err) {
				t.Errorf("empty response should be a generation failure, got %v", err)
			}
		})
	}
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	fm := &fakeModel{resp: textResponse("x")}
	c, _ := newTestClient(fm)

	for _, p := range []string{"", "   ", "\n\t"} {
		if _, err := c.Generate(context.Background(), p); !errors.Is(err, apierrors.ErrEmptyPrompt) {
			t.Errorf("Generate(%q) error = %v, want ErrEmptyPrompt", p, err)
		}
	}
	if fm.called != 0 {
		t.Errorf("blank prompts must not reach the API, got %d calls", fm.called)
	}
}

func TestGenerate_FactoryError(t *testing.T) {
	factoryErr := errors.New("You need an auth option to use this client")
	c := NewClient("", withModelFactory(func(ctx context.Context, name, mimeType string) (contentModel, error) {
		return nil, factoryErr
	}))

	_, err := c.Generate(context.Background(), "hi")
	if !apierrors.IsGenerationError(err) || !errors.Is(err, factoryErr) {
		t.Errorf("missing key should surface as a generation failure, got %v", err)
	}
}

func TestClose(t *testing.T) {
	fm := &fakeModel{resp: textResponse("x")}
	c, _ := newTestClient(fm)

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
	if !c.IsClosed() {
		t.Error("client should be closed")
	}

	_, err := c.Generate(context.Background(), "hi")
	if !errors.Is(err, apierrors.ErrClientClosed) {
		t.Errorf("expected ErrClientClosed, got %v", err)
	}
	if fm.called != 0 {
		t.Error("closed client must not call the API")
	}
}

func TestGenaiModel_AfterClose(t *testing.T) {
	c := NewClient("test-key")
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	// Close racing ahead of GenerateContent's IsClosed check lands here
	if _, err := c.genaiModel(context.Background(), "gemini-1.5-flash", models.MIMETypeText); !errors.Is(err, apierrors.ErrClientClosed) {
		t.Errorf("expected ErrClientClosed, got %v", err)
	}
	if c.genai != nil {
		t.Error("no SDK client should be created after Close")
	}
}

func TestOutputFromResponse_MultipleCandidates(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			nil,
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("a"), genai.Blob{MIMEType: "image/png"}}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("b")}}},
		},
	}

	out := outputFromResponse("m", resp)
	if out.Model != "m" {
		t.Errorf("model not recorded: %s", out.Model)
	}
	if len(out.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out.Candidates))
	}
	if out.Text() != "a" {
		t.Errorf("Text() = %q, want the first candidate %q", out.Text(), "a")
	}
}
