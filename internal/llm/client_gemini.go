package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements Client on top of the Google GenAI SDK.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float64
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, opts Options) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: opts.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	model := opts.Model
	if model == "" || strings.Contains(model, "/") {
		// OpenAI-style model names (openai/gpt-oss-20b) do not apply here.
		model = defaultGeminiModel
	}
	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: opts.Temperature,
	}, nil
}

// Model returns the configured model identifier.
func (c *GeminiClient) Model() string { return c.model }

// Complete sends a prompt without a system instruction.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem performs a single generateContent call, mapping SDK
// errors onto the executor's retry classes.
func (c *GeminiClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.temperature)),
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userPrompt), cfg)
	if err != nil {
		return "", classifyGenAIError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", transient(0, "empty response from model", nil)
	}
	return text, nil
}

func classifyGenAIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return rateLimited(apiErr.Code, apiErr.Message)
		case apiErr.Code >= 500:
			return transient(apiErr.Code, apiErr.Message, nil)
		default:
			return fatal(apiErr.Code, apiErr.Message)
		}
	}
	// No structured status: network-level failure, worth a retry.
	return transient(0, "generate content failed", err)
}

var _ Client = (*GeminiClient)(nil)
