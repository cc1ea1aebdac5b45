package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient sends chat completion requests.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClient creates a chat completion client.
func NewOpenAIClient(apiKey, baseURL, model string, maxTokens int, httpClient *http.Client) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIClient{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Complete returns the first choice's content for a system and user message pair.
func (c *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &StatusError{Service: "openai", StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &StatusError{Service: "openai", StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
		}
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
