package generate

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// llmClient adapts an adk model.LLM to the Client contract.
type llmClient struct {
	model model.LLM
}

// NewLLMClient returns a Client backed by an adk model.
func NewLLMClient(m model.LLM) (Client, error) {
	if m == nil {
		return nil, fmt.Errorf("llm model is required")
	}
	return &llmClient{model: m}, nil
}

func (c *llmClient) Generate(ctx context.Context, req Request) (string, error) {
	contents := []*genai.Content{}
	if req.Context != "" {
		contents = append(contents, genai.NewContentFromText(req.Context, "system"))
	}
	contents = append(contents, genai.NewContentFromText(req.Message, "user"))

	seq := c.model.GenerateContent(ctx, &model.LLMRequest{Contents: contents}, false)
	var resp *model.LLMResponse
	var err error
	seq(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("model returned empty content")
	}
	return text, nil
}

func extractText(resp *model.LLMResponse) string {
	if resp == nil || resp.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
