// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the brandstudio API server.
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

	"github.com/redis/go-redis/v9"

	"brandstudio/internal/ai"
	"brandstudio/internal/brand"
	"brandstudio/internal/cache"
	"brandstudio/internal/canvas"
	"brandstudio/internal/config"
	"brandstudio/internal/database"
	"brandstudio/internal/design"
	"brandstudio/internal/handlers"
	"brandstudio/internal/middleware"
	"brandstudio/internal/router"
	"brandstudio/internal/storage"
	"brandstudio/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// .env first so Load sees its values.
	config.LoadDotenv(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"frontend", cfg.FrontendURL,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Templates and the demo account are reference data in every environment.
	if err := database.Seed(db, cfg.DemoUserEmail); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Valkey is optional; without it templates are read straight from PostgreSQL.
	var valkeyClient *redis.Client
	if cfg.CacheEnabled() {
		valkeyClient, err = cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
	} else {
		slog.Warn("valkey not configured, template cache disabled")
	}

	userStore := store.NewUserStore(db)
	profileStore := store.NewBrandProfileStore(db)
	templateStore := store.NewTemplateStore(db)
	postStore := store.NewPostStore(db)
	agentLogStore := store.NewAgentLogStore(db)

	templates := cache.NewTemplates(valkeyClient, templateStore, cache.DefaultTemplateTTL)
	templates.Invalidate(context.Background())

	// S3 storage is optional. The interfaces below stay nil without it so
	// uploads answer 503 and generated images are skipped.
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3BucketPublic, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	var (
		uploader    handlers.ImageUploader
		imageSaver  design.Uploader
		imageLoader canvas.ImageLoader = canvas.NewHTTPLoader()
	)
	if storageClient != nil {
		uploader = storageClient
		imageSaver = storageClient
		imageLoader = &canvas.StorageLoader{Store: storageClient, Fallback: canvas.NewHTTPLoader()}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3BucketPublic)
	} else {
		slog.Warn("s3 storage not configured, uploads and generated images disabled")
	}

	aiRegistry := ai.NewRegistry(cfg.AIProvider, cfg.ImageProvider, map[string]ai.ProviderConfig{
		"claude":    {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"openai":    {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, ModelImage: cfg.OpenAIModelImage, BaseURL: cfg.OpenAIBaseURL},
		"gemini":    {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, ModelImage: cfg.GeminiModelImage, BaseURL: cfg.GeminiBaseURL},
		"mistral":   {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
		"stability": {APIKey: cfg.StabilityKey, ModelImage: cfg.StabilityModelImage, BaseURL: cfg.StabilityBaseURL},
		"compat":    {APIKey: cfg.CompatKey, Model: cfg.CompatModel, BaseURL: cfg.CompatBaseURL},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"image", aiRegistry.ActiveImageName(),
		"available", aiRegistry.Available(),
		"images", aiRegistry.SupportsImageGeneration(),
	)

	pipeline := design.NewPipeline(aiRegistry, aiRegistry, imageSaver, templates, profileStore)
	pipeline.Moderator = aiRegistry
	if cfg.AgentLogEnabled {
		pipeline.Logs = agentLogStore
	}

	r := router.New(cfg.FrontendURL,
		&middleware.DemoUser{Users: userStore, Email: cfg.DemoUserEmail, Password: database.DemoPassword},
		router.Handlers{
			Agents:    handlers.NewAgents(pipeline, agentLogStore),
			Brand:     handlers.NewBrand(uploader, brand.NewAnalyzer(aiRegistry), profileStore),
			Templates: handlers.NewTemplates(templates),
			Posts:     handlers.NewPosts(postStore, profileStore, imageLoader, cfg.FrontendURL),
			Designs:   handlers.NewDesigns(imageLoader),
		},
	)

	// WriteTimeout must cover a full pipeline run: three model calls plus
	// image generation, which can take well over a minute.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
