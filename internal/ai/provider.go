// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for the hosted models the design
// pipeline talks to: text LLMs (Claude, OpenAI, Gemini, Mistral, any
// OpenAI-compatible endpoint), vision-capable LLMs for brand analysis, and
// image generators (Stability, OpenAI, Gemini). The Registry selects the
// active text and image providers by name.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Provider defines the interface that all text AI providers must implement.
// Each provider handles its own HTTP communication and response parsing.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the generated text.
	// systemPrompt sets the model's behaviour; userPrompt is the user's request.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider identifier (e.g., "openai", "claude").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey     string
	Model      string
	ModelImage string // image model, for providers that can generate images
	BaseURL    string
}

// Registry manages available AI providers and selects the active ones.
// Text and image generation are selected independently because the
// original image backend (Stability) has no text model.
// All methods are safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	providers   map[string]Provider
	imagers     map[string]ImageGenerator
	active      string
	activeImage string
	moderator   Moderator // may be nil if no moderation API is available
}

// NewRegistry creates a registry and initialises providers for every config
// that has a non-empty API key. Providers without keys are silently skipped,
// except "compat" which only needs a base URL (local servers often run
// without keys). A Moderator is configured when OpenAI or Mistral keys exist.
func NewRegistry(active, activeImage string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers:   make(map[string]Provider),
		imagers:     make(map[string]ImageGenerator),
		active:      active,
		activeImage: activeImage,
	}

	for name, cfg := range configs {
		switch name {
		case "openai":
			if cfg.APIKey != "" {
				r.add(name, newOpenAI(cfg))
			}
		case "gemini":
			if cfg.APIKey != "" {
				r.add(name, newGemini(cfg))
			}
		case "claude":
			if cfg.APIKey != "" {
				r.add(name, newClaude(cfg))
			}
		case "mistral":
			if cfg.APIKey != "" {
				r.add(name, newMistral(cfg))
			}
		case "stability":
			if cfg.APIKey != "" {
				r.imagers[name] = newStability(cfg)
			}
		case "compat":
			if cfg.BaseURL != "" {
				p, err := newCompat(cfg)
				if err != nil {
					slog.Warn("compat provider disabled", "base_url", cfg.BaseURL, "error", err)
					continue
				}
				r.add(name, p)
			}
		}
	}

	// Prompt moderation: prefer OpenAI (free), fall back to Mistral.
	openaiCfg, hasOpenAI := configs["openai"]
	hasOpenAI = hasOpenAI && openaiCfg.APIKey != ""
	mistralCfg, hasMistral := configs["mistral"]
	hasMistral = hasMistral && mistralCfg.APIKey != ""

	switch {
	case hasOpenAI && hasMistral:
		r.moderator = newFallbackModerator(
			newOpenAIModerator(openaiCfg.APIKey, openaiCfg.BaseURL),
			newMistralModerator(mistralCfg.APIKey, mistralCfg.BaseURL),
		)
	case hasOpenAI:
		r.moderator = newOpenAIModerator(openaiCfg.APIKey, openaiCfg.BaseURL)
	case hasMistral:
		r.moderator = newMistralModerator(mistralCfg.APIKey, mistralCfg.BaseURL)
	}

	return r
}

// add registers a text provider and, if it also generates images, its
// image capability under the same name.
func (r *Registry) add(name string, p Provider) {
	r.providers[name] = p
	if ig, ok := p.(ImageGenerator); ok {
		r.imagers[name] = ig
	}
}

// Generate calls the active provider's Generate method.
func (r *Registry) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, systemPrompt, userPrompt)
}

// Active returns the currently active text provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// ActiveName returns the name of the currently active text provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// ActiveImageName returns the name of the provider used for image generation.
func (r *Registry) ActiveImageName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.activeImage
}

// Available returns the sorted names of all text providers that have valid API keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckPrompt runs the user prompt through the moderation API before
// generation. Returns Safe=true if no moderator is configured (providers
// still apply their own safety filters).
func (r *Registry) CheckPrompt(ctx context.Context, prompt string) (*ModerationResult, error) {
	if r.moderator == nil {
		return &ModerationResult{Safe: true}, nil
	}
	return r.moderator.CheckSafety(ctx, prompt)
}
