// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection. DatabaseURL wins over the individual parts.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Valkey (Redis-compatible cache). An empty host disables caching.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// JWTSecret is validated in production but not consumed by any route.
	JWTSecret string

	// FrontendURL is the single allowed CORS origin and the base for share links.
	FrontendURL string

	// AI provider selection
	AIProvider    string // text/vision provider: "claude", "openai", "gemini", "mistral", "compat"
	ImageProvider string // image provider: "stability", "openai", "gemini"

	ClaudeKey     string
	ClaudeModel   string
	ClaudeBaseURL string

	OpenAIKey        string
	OpenAIModel      string
	OpenAIModelImage string
	OpenAIBaseURL    string

	GeminiKey        string
	GeminiModel      string
	GeminiModelImage string
	GeminiBaseURL    string

	MistralKey     string
	MistralModel   string
	MistralBaseURL string

	StabilityKey        string
	StabilityModelImage string
	StabilityBaseURL    string

	// Any OpenAI-compatible endpoint (vLLM, Ollama, LiteLLM...).
	CompatKey     string
	CompatModel   string
	CompatBaseURL string

	// S3-compatible object storage for brand uploads and generated images.
	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3BucketPublic string
	S3PublicURL    string

	// DemoUserEmail identifies the single caller until real auth exists.
	DemoUserEmail string

	// AgentLogEnabled controls the orchestrator's audit rows.
	AgentLogEnabled bool
}

// LoadDotenv loads a .env file into the process environment. Values already
// present in the environment win. A missing file is not an error.
func LoadDotenv(path string) {
	if os.Getenv("APP_ENV") == "production" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		slog.Debug("no .env file loaded", "path", path, "error", err)
		return
	}
	slog.Info("environment loaded from file", "path", path)
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", envOrDefault("PORT", "5000")),
		Env:  envOrDefault("APP_ENV", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:      envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:      envOrDefault("POSTGRES_USER", "brandstudio"),
		DBPassword:  envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:      envOrDefault("POSTGRES_DB", "brandstudio"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		FrontendURL: envOrDefault("FRONTEND_URL", "http://localhost:5173"),

		AIProvider:    envOrDefault("AI_PROVIDER", "claude"),
		ImageProvider: envOrDefault("IMAGE_PROVIDER", "stability"),

		ClaudeKey:     envOrDefault("CLAUDE_API_KEY", os.Getenv("ANTHROPIC_API_KEY")),
		ClaudeModel:   envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-6"),
		ClaudeBaseURL: envOrDefault("CLAUDE_BASE_URL", "https://api.anthropic.com"),

		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      envOrDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIModelImage: envOrDefault("OPENAI_MODEL_IMAGE", "gpt-image-1"),
		OpenAIBaseURL:    envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		GeminiKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      envOrDefault("GEMINI_MODEL", "gemini-3.1-pro-preview"),
		GeminiModelImage: os.Getenv("GEMINI_MODEL_IMAGE"),
		GeminiBaseURL:    envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),

		MistralKey:     os.Getenv("MISTRAL_API_KEY"),
		MistralModel:   envOrDefault("MISTRAL_MODEL", "mistral-large-latest"),
		MistralBaseURL: envOrDefault("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),

		StabilityKey:        os.Getenv("STABILITY_API_KEY"),
		StabilityModelImage: envOrDefault("STABILITY_MODEL_IMAGE", "core"),
		StabilityBaseURL:    envOrDefault("STABILITY_BASE_URL", "https://api.stability.ai"),

		CompatKey:     os.Getenv("COMPAT_API_KEY"),
		CompatModel:   os.Getenv("COMPAT_MODEL"),
		CompatBaseURL: os.Getenv("COMPAT_BASE_URL"),

		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3Region:       envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3BucketPublic: envOrDefault("S3_BUCKET_PUBLIC", "brandstudio-public"),
		S3PublicURL:    os.Getenv("S3_PUBLIC_URL"),

		DemoUserEmail:   envOrDefault("DEMO_USER_EMAIL", "demo@example.com"),
		AgentLogEnabled: envBool("AGENT_LOG_ENABLED", true),
	}

	if cfg.Env == "production" {
		if cfg.DatabaseURL == "" && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
		}
		if cfg.ProviderKey(cfg.AIProvider) == "" {
			return nil, fmt.Errorf("AI_PROVIDER %q has no API key configured", cfg.AIProvider)
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Valkey host has been configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// StorageEnabled reports whether S3 credentials are present.
func (c *Config) StorageEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// ProviderKey returns the API key configured for the named provider.
func (c *Config) ProviderKey(name string) string {
	switch name {
	case "claude":
		return c.ClaudeKey
	case "openai":
		return c.OpenAIKey
	case "gemini":
		return c.GeminiKey
	case "mistral":
		return c.MistralKey
	case "stability":
		return c.StabilityKey
	case "compat":
		return c.CompatKey
	}
	return ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envBool parses a boolean environment variable. Unparseable values use the fallback.
func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
