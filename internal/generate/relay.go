package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// relayClient calls the companion backend's chat endpoint.
type relayClient struct {
	baseURL string
	client  *http.Client
}

// NewRelayClient returns a Client backed by the HTTP relay backend.
func NewRelayClient(baseURL string) Client {
	return &relayClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type relayRequest struct {
	Message   string   `json:"message"`
	Context   string   `json:"context,omitempty"`
	Character string   `json:"character,omitempty"`
	Emotion   *Emotion `json:"userEmotion,omitempty"`
}

type relayResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func (c *relayClient) Generate(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(relayRequest{
		Message:   req.Message,
		Context:   req.Context,
		Character: req.Character,
		Emotion:   req.Emotion,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/chat"), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call chat backend: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr.Error())
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	var decoded relayResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	if decoded.Response == "" {
		return "", fmt.Errorf("chat response is missing the response field")
	}
	return decoded.Response, nil
}

// endpoint joins the API path onto the base URL, tolerating bases that
// already end in /api.
func (c *relayClient) endpoint(path string) string {
	base := strings.TrimSuffix(c.baseURL, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	return base + path
}
