// Package llm provides the model-service clients and the retrying request
// executor the description pipeline issues its calls through.
package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Client is implemented by each model provider. A client performs exactly one
// attempt per call and classifies failures via CallError; retry policy lives
// in the Executor.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Model() string
}

// Provider selects a model service backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Options configures a provider client.
type Options struct {
	Provider    Provider
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// DetectProvider resolves the provider and API key from the environment.
// OPENAI_API_KEY wins over GEMINI_API_KEY. The error message names the
// variables so a missing-credentials failure is actionable.
func DetectProvider() (Provider, string, error) {
	checks := []struct {
		envVar   string
		provider Provider
	}{
		{"OPENAI_API_KEY", ProviderOpenAI},
		{"GEMINI_API_KEY", ProviderGemini},
	}
	for _, c := range checks {
		if key := os.Getenv(c.envVar); key != "" {
			return c.provider, key, nil
		}
	}
	return "", "", fmt.Errorf("no API key found; set OPENAI_API_KEY or GEMINI_API_KEY")
}

// NewClient creates a provider client from options. An empty Provider falls
// back to environment detection.
func NewClient(ctx context.Context, opts Options) (Client, error) {
	if opts.Provider == "" {
		provider, key, err := DetectProvider()
		if err != nil {
			return nil, err
		}
		opts.Provider = provider
		if opts.APIKey == "" {
			opts.APIKey = key
		}
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %s", opts.Provider)
	}

	switch opts.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(opts), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown provider: %s (valid: openai, gemini)", opts.Provider)
	}
}
