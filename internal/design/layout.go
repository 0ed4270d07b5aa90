// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"brandstudio/internal/ai"
	"brandstudio/internal/models"
)

const layoutSystemPrompt = "You are a layout designer. Output ONLY valid JSON array of element descriptors."

// LayoutGenerator turns a brief into positioned elements.
type LayoutGenerator struct {
	model TextModel
}

// NewLayoutGenerator creates a LayoutGenerator backed by model.
func NewLayoutGenerator(model TextModel) *LayoutGenerator {
	return &LayoutGenerator{model: model}
}

// Generate asks the model for a layout. A response that is not a
// non-empty JSON array of elements yields FallbackLayout.
func (g *LayoutGenerator) Generate(ctx context.Context, brief models.Brief) ([]models.DesignElement, error) {
	prompt := fmt.Sprintf(`Generate a layout JSON for a %s %s design.
Include positions (x, y) and sizes (width, height) as percentages (0-100).
Give text elements ids containing "headline" or "body" and image elements ids containing "image".
Return an array like [{ "id": "headline", "type": "text", "x": 5, "y": 5, "width": 90, "height": 15 }, ...].`,
		brief.Platform, brief.LayoutStyle)

	text, err := g.model.Generate(ctx, layoutSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate layout: %w", err)
	}

	parsed := ai.ParseJSON(text, FallbackLayout(), validateLayout)
	if !parsed.OK {
		slog.Warn("layout output unparseable, using fallback layout", "error", parsed.Err)
	}
	return parsed.Value, nil
}

// FallbackLayout is a single full-bleed image placeholder.
func FallbackLayout() []models.DesignElement {
	return []models.DesignElement{
		{ID: "image", Type: models.ElementImage, X: 0, Y: 0, Width: 100, Height: 100},
	}
}

func validateLayout(elements []models.DesignElement) error {
	if len(elements) == 0 {
		return errors.New("layout is empty")
	}
	return nil
}
