// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// stabilityProvider is an image-only generator backed by the Stability AI
// Stable Image API (POST /v2beta/stable-image/generate/{model}).
type stabilityProvider struct {
	config ProviderConfig
	client *http.Client
}

func newStability(cfg ProviderConfig) *stabilityProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.stability.ai"
	}
	if cfg.ModelImage == "" {
		cfg.ModelImage = "core"
	}
	return &stabilityProvider{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *stabilityProvider) Name() string { return "stability" }

// GenerateImage requests a square PNG and returns the raw bytes.
func (p *stabilityProvider) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"prompt", prompt},
		{"aspect_ratio", "1:1"},
		{"output_format", "png"},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("stability form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("stability form: %w", err)
	}

	url := fmt.Sprintf("%s/v2beta/stable-image/generate/%s", p.config.BaseURL, p.config.ModelImage)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, "", fmt.Errorf("stability request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	req.Header.Set("Accept", "image/*")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("stability http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("stability read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("stability API error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(body) == 0 {
		return nil, "", fmt.Errorf("stability: empty image")
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(body)
	}
	return body, ct, nil
}
