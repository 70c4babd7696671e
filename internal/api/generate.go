package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

// Generate sends a prompt and returns the answer text. In JSON output mode
// the answer is unwrapped from the returned document when possible.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	output, err := c.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	text := output.Text()
	if c.JSONOutput() {
		text = UnwrapJSONAnswer(text)
		// {"text": ""} is valid JSON but still no answer
		if strings.TrimSpace(text) == "" {
			return "", apierrors.NewGenerationError(output.Model, apierrors.ErrNoContent)
		}
	}
	return text, nil
}

// GenerateContent sends a prompt to Gemini and returns the response.
// There is exactly one request per call: no retry, no streaming, and no
// deadline beyond whatever ctx carries.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, apierrors.ErrEmptyPrompt
	}

	model := c.GetModel()

	if c.IsClosed() {
		return nil, apierrors.NewGenerationError(model.Name, apierrors.ErrClientClosed)
	}

	cm, err := c.newModel(ctx, model.Name, c.mimeType())
	if err != nil {
		return nil, apierrors.NewGenerationError(model.Name, err)
	}

	start := time.Now()
	resp, err := cm.GenerateContent(ctx, genai.Text(prompt))
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Warn("generation call failed",
			zap.String("model", model.Name),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, apierrors.NewGenerationError(model.Name, err)
	}

	output := outputFromResponse(model.Name, resp)

	c.logger.Debug("generation call finished",
		zap.String("model", model.Name),
		zap.Duration("elapsed", elapsed),
		zap.Int("candidates", len(output.Candidates)),
		zap.Strings("finish_reasons", output.FinishReasons()),
	)

	if !output.HasText() {
		return nil, apierrors.NewGenerationError(model.Name, apierrors.ErrNoContent)
	}

	return output, nil
}

// outputFromResponse collects the text parts of every candidate
func outputFromResponse(model string, resp *genai.GenerateContentResponse) *models.ModelOutput {
	output := &models.ModelOutput{Model: model}
	if resp == nil {
		return output
	}

	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}

		var sb strings.Builder
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					sb.WriteString(string(t))
				}
			}
		}

		output.Candidates = append(output.Candidates, models.Candidate{
			Text:         sb.String(),
			FinishReason: fmt.Sprint(cand.FinishReason),
		})
	}

	return output
}
