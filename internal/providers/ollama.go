package providers

import (
	"context"
	"fmt"

	ollama "github.com/prathyushnallamothu/ollamago"
)

// OllamaClient implements the Client interface for a local Ollama server
type OllamaClient struct {
	client      *ollama.Client
	model       string
	temperature float64
}

// NewOllamaClient creates a new Ollama client
func NewOllamaClient(config *Config) (*OllamaClient, error) {
	client := ollama.NewClient(
		ollama.WithBaseURL(config.BaseURL),
	)

	return &OllamaClient{
		client:      client,
		model:       config.Model,
		temperature: config.Temperature,
	}, nil
}

// Name returns the provider name
func (c *OllamaClient) Name() string {
	return string(ProviderOllama)
}

// Validate checks if the client configuration is valid
func (c *OllamaClient) Validate() error {
	if c.client == nil {
		return fmt.Errorf("client is not initialized")
	}
	if c.model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}

// Complete sends a completion request to the Ollama API
func (c *OllamaClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("client validation failed: %w", err)
	}

	generateReq := &ollama.GenerateRequest{
		Model:  c.model,
		Prompt: req.Prompt,
		Options: &ollama.Options{
			Temperature: &c.temperature,
		},
		Stream: false, // We want the complete response
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	resp, err := c.client.Generate(ctx, *generateReq)
	if err != nil {
		return nil, fmt.Errorf("ollama API request failed: %w", err)
	}

	return &Response{
		Text: resp.Response,
		Usage: Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}
