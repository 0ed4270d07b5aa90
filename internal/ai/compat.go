// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// compatProvider drives any OpenAI-compatible server (vLLM, Ollama,
// LiteLLM...) through langchaingo's OpenAI client.
type compatProvider struct {
	llm llms.Model
}

func newCompat(cfg ProviderConfig) (*compatProvider, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("compat base url %q: want http(s)://host", cfg.BaseURL)
	}

	token := cfg.APIKey
	if token == "" {
		// langchaingo refuses an empty token; local servers ignore it.
		token = "not-needed"
	}
	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithBaseURL(cfg.BaseURL),
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("compat client: %w", err)
	}
	return &compatProvider{llm: llm}, nil
}

func (p *compatProvider) Name() string { return "compat" }

func (p *compatProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := p.llm.GenerateContent(ctx, content, llms.WithMaxTokens(4096))
	if err != nil {
		return "", fmt.Errorf("compat generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("compat: no choices returned")
	}
	return resp.Choices[0].Content, nil
}
