package ai

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultAzureAPIVersion is the Azure OpenAI data-plane API version the
// sidebar was built against.
const defaultAzureAPIVersion = "2025-01-01-preview"

// azureProvider implements Provider using the Azure OpenAI chat
// completions API. Azure routes by deployment name in the URL path and
// authenticates with an api-key header instead of a bearer token.
type azureProvider struct {
	config ProviderConfig
	client *http.Client
}

// newAzure creates a new Azure OpenAI provider.
func newAzure(cfg ProviderConfig) *azureProvider {
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAzureAPIVersion
	}
	return &azureProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *azureProvider) Name() string { return "azure" }

// Ask sends a single-message chat completion request to the configured
// deployment and returns the assistant's response text.
func (p *azureProvider) Ask(ctx context.Context, question string) (string, error) {
	body := chatRequest{
		// Azure ignores the model field — the deployment in the URL decides —
		// but sending it matches the reference client and is harmless.
		Model:       p.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: question}},
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	}

	endpoint := strings.TrimRight(p.config.BaseURL, "/")
	u := endpoint + "/openai/deployments/" + url.PathEscape(p.config.Model) +
		"/chat/completions?api-version=" + url.QueryEscape(p.config.APIVersion)

	headers := map[string]string{"api-key": p.config.APIKey}
	return doChat(ctx, p.client, "azure", u, headers, body)
}
