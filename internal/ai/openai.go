// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// openAIProvider implements Provider, VisionProvider and ImageGenerator
// using the OpenAI chat completions and images APIs.
type openAIProvider struct {
	config      ProviderConfig
	client      *http.Client
	imageClient *http.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.ModelImage == "" {
		cfg.ModelImage = "gpt-image-1"
	}
	return &openAIProvider{
		config:      cfg,
		client:      &http.Client{Timeout: 60 * time.Second},
		imageClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *openAIProvider) Name() string { return "openai" }

// Generate sends a chat completion request to OpenAI and returns the
// assistant's response text.
func (p *openAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return p.doChat(ctx, openAIRequest{
		Model:    p.config.Model,
		Messages: chatMessages(systemPrompt, userPrompt),
	})
}

// GenerateWithImages sends the prompt as a multi-part user message with one
// image_url part per image.
func (p *openAIProvider) GenerateWithImages(ctx context.Context, systemPrompt, userPrompt string, imageURLs []string) (string, error) {
	parts := make([]openAIPart, 0, len(imageURLs)+1)
	parts = append(parts, openAIPart{Type: "text", Text: userPrompt})
	for _, u := range imageURLs {
		parts = append(parts, openAIPart{Type: "image_url", ImageURL: &openAIImageURL{URL: u}})
	}

	return p.doChat(ctx, openAIRequest{
		Model:    p.config.Model,
		Messages: chatMessages(systemPrompt, parts),
	})
}

// chatMessages omits the system message when there is no system prompt.
func chatMessages(systemPrompt string, user any) []openAIMessage {
	if systemPrompt == "" {
		return []openAIMessage{{Role: "user", Content: user}}
	}
	return []openAIMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user},
	}
}

// doChat performs the HTTP call to the chat completions endpoint.
// Shared between OpenAI and Mistral (same API format).
func (p *openAIProvider) doChat(ctx context.Context, body openAIRequest) (string, error) {
	respBody, err := p.post(ctx, p.client, "/chat/completions", body)
	if err != nil {
		return "", err
	}

	var result openAIResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("openai unmarshal: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}

	return result.Choices[0].Message.Content, nil
}

// GenerateImage creates a square image with the Images API. gpt-image
// models always answer with base64 data; older models may answer with a
// URL, which is downloaded.
func (p *openAIProvider) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	respBody, err := p.post(ctx, p.imageClient, "/images/generations", openAIImageRequest{
		Model:  p.config.ModelImage,
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	})
	if err != nil {
		return nil, "", err
	}

	var result openAIImageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, "", fmt.Errorf("openai image unmarshal: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, "", fmt.Errorf("openai: no image returned")
	}

	img := result.Data[0]
	if img.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, "", fmt.Errorf("openai image decode: %w", err)
		}
		return data, http.DetectContentType(data), nil
	}
	if img.URL != "" {
		return p.download(ctx, img.URL)
	}
	return nil, "", fmt.Errorf("openai: image response has no data")
}

func (p *openAIProvider) download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("openai image download request: %w", err)
	}
	resp, err := p.imageClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("openai image download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("openai image download: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("openai image download read: %w", err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return data, ct, nil
}

// post marshals body, sends it to BaseURL+path with bearer auth, and
// returns the raw response body for a 200 answer.
func (p *openAIProvider) post(ctx context.Context, client *http.Client, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("openai marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// --- OpenAI-compatible request/response types ---
// Used by both OpenAI and Mistral providers.

// openAIMessage.Content is either a string or a []openAIPart.
type openAIMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
}

type openAIChoice struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
}

type openAIImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type openAIImageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}
