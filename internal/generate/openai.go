package generate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiClient calls an OpenAI-compatible chat completion API.
type openaiClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient returns a Client backed by the OpenAI chat API.
func NewOpenAIClient(apiKey, model string) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiClient{client: &client, model: model}, nil
}

func (c *openaiClient) Generate(ctx context.Context, req Request) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.Context != "" {
		messages = append(messages, openai.SystemMessage(req.Context))
	}
	messages = append(messages, openai.UserMessage(req.Message))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		slog.Error("failed to call llm API", "error", err.Error())
		return "", fmt.Errorf("failed to call chat completion API: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return content, nil
}
