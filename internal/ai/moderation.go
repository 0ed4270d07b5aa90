// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ModerationResult contains the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool     // true if the prompt passes moderation
	Categories []string // flagged category names, sorted (empty when safe)
}

// Moderator checks design prompts for policy violations before they reach
// the generation endpoints.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// moderationEndpoint is a POST /moderations endpoint speaking the
// OpenAI-style request shape. OpenAI and Mistral differ only in the model
// name and in whether a top-level "flagged" flag is returned.
type moderationEndpoint struct {
	label   string
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
}

func (m *moderationEndpoint) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	payload, err := json.Marshal(moderationRequest{Model: m.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("%s moderation marshal: %w", m.label, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/moderations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s moderation request: %w", m.label, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s moderation http: %w", m.label, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s moderation read body: %w", m.label, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s moderation API error (status %d): %s", m.label, resp.StatusCode, string(respBody))
	}

	var result moderationResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%s moderation unmarshal: %w", m.label, err)
	}
	if len(result.Results) == 0 {
		return &ModerationResult{Safe: true}, nil
	}

	r := result.Results[0]
	flagged := flaggedCategories(r.Categories)
	// Mistral has no top-level flag; any flagged category counts.
	if r.Flagged == nil {
		return &ModerationResult{Safe: len(flagged) == 0, Categories: flagged}, nil
	}
	if !*r.Flagged {
		return &ModerationResult{Safe: true}, nil
	}
	return &ModerationResult{Safe: false, Categories: flagged}, nil
}

// flaggedCategories turns {"hate/threatening": true, "self_harm": true}
// into ["hate (threatening)", "self harm"].
func flaggedCategories(cats map[string]bool) []string {
	var out []string
	for cat, isFlagged := range cats {
		if !isFlagged {
			continue
		}
		display := cat
		if strings.Contains(display, "/") {
			display = strings.Replace(display, "/", " (", 1) + ")"
		}
		out = append(out, strings.ReplaceAll(display, "_", " "))
	}
	sort.Strings(out)
	return out
}

// newOpenAIModerator uses OpenAI's free moderation endpoint.
func newOpenAIModerator(apiKey, baseURL string) *moderationEndpoint {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &moderationEndpoint{
		label:   "openai",
		model:   "omni-moderation-latest",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// newMistralModerator uses Mistral's moderation endpoint. baseURL includes
// the /v1 prefix, like the chat provider's.
func newMistralModerator(apiKey, baseURL string) *moderationEndpoint {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai/v1"
	}
	return &moderationEndpoint{
		label:   "mistral",
		model:   "mistral-moderation-latest",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// fallbackModerator asks primary first and secondary only when primary errors.
type fallbackModerator struct {
	primary   Moderator
	secondary Moderator
}

func newFallbackModerator(primary, secondary Moderator) *fallbackModerator {
	return &fallbackModerator{primary: primary, secondary: secondary}
}

func (m *fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	res, err := m.primary.CheckSafety(ctx, text)
	if err == nil {
		return res, nil
	}
	slog.Warn("primary moderation failed, trying fallback", "error", err)
	return m.secondary.CheckSafety(ctx, text)
}

// --- Request/Response types ---

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []moderationResult `json:"results"`
}

type moderationResult struct {
	Flagged    *bool           `json:"flagged"`
	Categories map[string]bool `json:"categories"`
}
