// Package main is the entry point for the StoriesLab server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storieslab/internal/ai"
	"storieslab/internal/assembler"
	"storieslab/internal/cache"
	"storieslab/internal/config"
	"storieslab/internal/fetch"
	"storieslab/internal/handlers"
	"storieslab/internal/identity"
	"storieslab/internal/imaging"
	"storieslab/internal/publisher"
	"storieslab/internal/router"
	"storieslab/internal/storage"
)

func main() {
	// Structured logger — outputs text with debug level; production setups
	// filter through the process supervisor.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to S3-compatible object storage (optional — submissions
	// degrade to the default cover image without it).
	storageClient, err := storage.New(cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.CDNBase)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "bucket", cfg.S3Bucket, "region", cfg.S3Region)
	} else {
		slog.Warn("s3 storage not configured — image re-hosting disabled")
	}

	// Artifact store: Valkey when configured, in-process memory otherwise.
	var store handlers.ArtifactStore = handlers.NewMemoryStore()
	if cfg.ValkeyHost != "" {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		store = cache.NewStoryCache(valkeyClient, cache.DefaultStoryTTL)
	} else {
		slog.Warn("valkey not configured — artifacts held in process memory")
	}

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"azure":  {APIKey: cfg.AzureAPIKey, Model: cfg.AzureDeployment, BaseURL: cfg.AzureEndpoint, APIVersion: cfg.AzureAPIVersion},
		"openai": {APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Assemble the publishing pipeline.
	pub := &publisher.Publisher{
		Identity: identity.Generator{
			StoryBase: cfg.StoryBase,
			HTMLBase:  cfg.StoryHTMLBase,
		},
		Fetcher: fetch.New(fetch.DefaultTimeout),
		Storage: uploader(storageClient),
		Images: imaging.Builder{
			Bucket:  cfg.S3Bucket,
			CDNBase: cfg.MediaCDNBase,
		},
		Assembler:    &assembler.Assembler{},
		LoadTemplate: publisher.FileTemplate(cfg.TemplatePath),
		S3Prefix:     cfg.S3Prefix,
	}

	stories := &handlers.Stories{
		Publisher: pub,
		Store:     store,
		AI:        aiRegistry,
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(stories)

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate the chat endpoint waiting on LLM
	// responses and submissions that fetch remote images.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// uploader converts a possibly-nil storage client into the publisher's
// Uploader interface without wrapping nil in a non-nil interface value.
func uploader(c *storage.Client) publisher.Uploader {
	if c == nil {
		return nil
	}
	return c
}
