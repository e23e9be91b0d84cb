package textgen

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"ContentForge/internal/ports"
)

// AnthropicClient is the alternative generation capability, selected by
// config. It satisfies the same contract as the OpenAI-compatible client.
type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

var _ ports.Completer = (*AnthropicClient)(nil)

// NewAnthropicClient builds a client for the given model.
func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{client: &client, model: anthropic.Model(model)}
}

// Complete sends the prompt pair and returns the raw response text.
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: defaultMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("message completion: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return resp.Content[0].Text, nil
}
