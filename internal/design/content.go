// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"brandstudio/internal/ai"
	"brandstudio/internal/models"
	"brandstudio/internal/storage"
)

const copySystemPrompt = "You are a copywriter. Output ONLY valid JSON."

// Fallback copy used when the model's answer cannot be read.
const (
	FallbackHeadline = "Your Brand"
	FallbackBody     = "Check out our latest product!"
)

// ContentGenerator writes copy and produces an image for a brief.
type ContentGenerator struct {
	text     TextModel
	images   ImageModel // nil disables image generation
	uploader Uploader   // nil disables image generation
}

// NewContentGenerator creates a ContentGenerator. images and uploader may
// be nil, in which case every design gets an empty image URL.
func NewContentGenerator(text TextModel, images ImageModel, uploader Uploader) *ContentGenerator {
	return &ContentGenerator{text: text, images: images, uploader: uploader}
}

type copyText struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

// Generate runs the copy and image calls concurrently. A failed image never
// fails the call; it leaves ImageURL empty. A copy transport error does.
func (g *ContentGenerator) Generate(ctx context.Context, brief models.Brief) (models.Content, error) {
	var (
		written  copyText
		imageURL string
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		c, err := g.writeCopy(egCtx, brief)
		if err != nil {
			return err
		}
		written = c
		return nil
	})
	eg.Go(func() error {
		url, err := g.makeImage(egCtx, brief)
		if err != nil {
			slog.Warn("image generation failed, continuing without image", "error", err)
			return nil
		}
		imageURL = url
		return nil
	})
	if err := eg.Wait(); err != nil {
		return models.Content{}, err
	}

	return models.Content{Headline: written.Headline, Body: written.Body, ImageURL: imageURL}, nil
}

func (g *ContentGenerator) writeCopy(ctx context.Context, brief models.Brief) (copyText, error) {
	prompt := fmt.Sprintf("Write concise marketing copy for a %s post with a %s tone. Include a headline and a short body. Return JSON like { headline: string, body: string }.",
		brief.Platform, brief.Tone)

	text, err := g.text.Generate(ctx, copySystemPrompt, prompt)
	if err != nil {
		return copyText{}, fmt.Errorf("generate copy: %w", err)
	}

	parsed := ai.ParseJSON(text, copyText{Headline: FallbackHeadline, Body: FallbackBody}, validateCopy)
	if !parsed.OK {
		slog.Warn("copy output unparseable, using fallback copy", "error", parsed.Err)
	}
	return parsed.Value, nil
}

func (g *ContentGenerator) makeImage(ctx context.Context, brief models.Brief) (string, error) {
	if g.images == nil {
		return "", errors.New("no image provider configured")
	}
	if g.uploader == nil {
		return "", errors.New("no storage configured for generated images")
	}

	data, contentType, err := g.images.GenerateImage(ctx, ImagePrompt(brief))
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("image provider returned no data")
	}
	if contentType == "" {
		contentType = "image/png"
	}

	url, err := g.uploader.Upload(ctx, storage.FolderGenerated, contentType, data)
	if err != nil {
		return "", fmt.Errorf("upload generated image: %w", err)
	}
	return url, nil
}

// ImagePrompt is the text-to-image prompt for a brief.
func ImagePrompt(brief models.Brief) string {
	return fmt.Sprintf("Create a high-resolution %s style image for a %s brand. Use colors from the brand profile if available.",
		brief.Platform, brief.Tone)
}

func validateCopy(c copyText) error {
	if strings.TrimSpace(c.Headline) == "" || strings.TrimSpace(c.Body) == "" {
		return errors.New("copy is missing headline or body")
	}
	return nil
}
