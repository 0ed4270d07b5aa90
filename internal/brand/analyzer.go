// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package brand infers a visual identity from uploaded brand images and
// turns an analysis into a storable BrandProfile.
package brand

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"brandstudio/internal/ai"
	"brandstudio/internal/models"
)

// ErrNoImages is returned when Analyze is called without any image URL.
var ErrNoImages = errors.New("brand: no image URLs provided")

// analysisPrompt is sent alongside the images. The model is asked for a
// bare object, but prose around it is tolerated by the extraction step.
const analysisPrompt = `Analyze these brand images and extract the visual identity.
Return ONLY a valid JSON object with the following structure, no other text:
{
  "brandName": "inferred name or 'Unknown'",
  "colors": {
    "primary": "hex code",
    "secondary": "hex code",
    "accent": "hex code"
  },
  "fonts": {
    "primary": "font family name or style description",
    "secondary": "font family name or style description"
  },
  "toneOfVoice": "3-5 words describing the brand voice (e.g., Professional, Playful, Minimalist)",
  "styleDescription": "A brief paragraph describing the overall aesthetic",
  "keywords": ["array", "of", "5", "style", "keywords"]
}`

// VisionModel is the slice of the AI registry the analyzer needs.
type VisionModel interface {
	GenerateWithImages(ctx context.Context, systemPrompt, userPrompt string, imageURLs []string) (string, error)
}

// Analyzer asks a vision-capable model to describe a brand.
type Analyzer struct {
	model VisionModel
}

// NewAnalyzer creates an Analyzer backed by model.
func NewAnalyzer(model VisionModel) *Analyzer {
	return &Analyzer{model: model}
}

// Analyze sends the images to the model and decodes its answer. Unlike the
// design stages there is no fallback: any failure is returned.
func (a *Analyzer) Analyze(ctx context.Context, imageURLs []string) (*models.BrandAnalysis, error) {
	urls := make([]string, 0, len(imageURLs))
	for _, u := range imageURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, ErrNoImages
	}

	text, err := a.model.GenerateWithImages(ctx, "", analysisPrompt, urls)
	if err != nil {
		return nil, fmt.Errorf("analyze brand images: %w", err)
	}

	raw, err := ai.ExtractJSONObject(text)
	if err != nil {
		slog.Warn("brand analysis returned no JSON", "response_len", len(text))
		return nil, fmt.Errorf("analyze brand images: %w", err)
	}

	var analysis models.BrandAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("decode brand analysis: %w", err)
	}
	if analysis.Keywords == nil {
		analysis.Keywords = []string{}
	}
	return &analysis, nil
}
