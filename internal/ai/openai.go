package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sampling parameters for the sidebar chat. The answers are short factual
// helpers, so a moderate temperature and a hard token cap are fine.
const (
	chatMaxTokens   = 1500
	chatTemperature = 0.5
)

// openAIProvider implements Provider using the OpenAI chat completions
// API (POST /v1/chat/completions).
type openAIProvider struct {
	config ProviderConfig
	client *http.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return &openAIProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *openAIProvider) Name() string { return "openai" }

// Ask sends a single-message chat completion request and returns the
// assistant's response text.
func (p *openAIProvider) Ask(ctx context.Context, question string) (string, error) {
	body := chatRequest{
		Model:       p.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: question}},
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	}

	url := p.config.BaseURL + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + p.config.APIKey}
	return doChat(ctx, p.client, "openai", url, headers, body)
}

// doChat performs the HTTP call to an OpenAI-compatible chat completions
// endpoint. Shared between the OpenAI and Azure providers — the wire
// format is identical, only URL shape and auth header differ.
func doChat(ctx context.Context, client *http.Client, name, url string, headers map[string]string, body chatRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%s marshal: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%s request: %w", name, err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s http: %w", name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s read body: %w", name, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s API error (status %d): %s", name, resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%s unmarshal: %w", name, err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", name)
	}

	return result.Choices[0].Message.Content, nil
}

// --- OpenAI-compatible request/response types ---
// Used by both the OpenAI and Azure providers.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}
