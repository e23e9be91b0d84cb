package textgen

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"ContentForge/internal/ports"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
)

// OpenAIClient talks to any OpenAI-compatible chat-completions endpoint
// (OpenAI itself, Chutes, Groq). The endpoint is configurable so the same
// client covers every compatible host.
type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

var _ ports.Completer = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client; baseURL may be empty for api.openai.com.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client, model: openai.ChatModel(model)}
}

// Complete sends the prompt pair and returns the raw response text.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(defaultTemperature),
		MaxTokens:   openai.Int(defaultMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}
