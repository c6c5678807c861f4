// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Page template the assembler splices submissions into
	TemplatePath string

	// S3 re-hosting of story images
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Prefix    string // key prefix for uploaded images, e.g. "media/"
	CDNBase     string // retrieval base for uploaded objects

	// Media transform CDN (resize descriptors are appended to this base)
	MediaCDNBase string

	// Canonical story URL bases
	StoryBase     string
	StoryHTMLBase string

	// Valkey (Redis-compatible cache); optional
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI chat sidebar settings
	AIProvider      string // "azure" or "openai"
	AzureAPIKey     string
	AzureEndpoint   string
	AzureDeployment string
	AzureAPIVersion string
	OpenAIAPIKey    string
	OpenAIModel     string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		TemplatePath: envOrDefault("TEMPLATE_PATH", "templates/master.html"),

		S3Region:    envOrDefault("AWS_REGION", "ap-south-1"),
		S3AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		S3SecretKey: os.Getenv("AWS_SECRET_KEY"),
		S3Bucket:    envOrDefault("AWS_BUCKET", "suvichaarapp"),
		S3Prefix:    envOrDefault("S3_PREFIX", "media/"),
		CDNBase:     envOrDefault("CDN_BASE", "https://cdn.suvichaar.org/"),

		MediaCDNBase: envOrDefault("MEDIA_CDN_BASE", "https://media.suvichaar.org/"),

		StoryBase:     envOrDefault("STORY_BASE", "https://suvichaar.org/stories/"),
		StoryHTMLBase: envOrDefault("STORY_HTML_BASE", "https://stories.suvichaar.org/"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider:      envOrDefault("AI_PROVIDER", "azure"),
		AzureAPIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
		AzureEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		AzureDeployment: envOrDefault("AZURE_OPENAI_DEPLOYMENT", "gpt-4"),
		AzureAPIVersion: envOrDefault("AZURE_OPENAI_API_VERSION", "2025-01-01-preview"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     envOrDefault("OPENAI_MODEL", "gpt-4"),
	}

	if cfg.Env == "production" {
		if cfg.TemplatePath == "" {
			return nil, fmt.Errorf("TEMPLATE_PATH must be set in production")
		}
		if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
			return nil, fmt.Errorf("AWS_ACCESS_KEY and AWS_SECRET_KEY must be set in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
