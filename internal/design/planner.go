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

	"brandstudio/internal/ai"
	"brandstudio/internal/models"
)

const plannerSystemPrompt = `You are a design planner. Convert the user's natural language request into a JSON design brief with the following shape:
{
  platform: string,          // e.g., "INSTAGRAM", "LINKEDIN"
  template: string,          // suggested template name or "custom"
  layoutStyle: string,       // e.g., "grid", "single-image", "carousel"
  requiredAssets: string[],  // list of asset types needed ("image", "logo", "text")
  tone: string               // brand tone of voice (e.g., "professional", "playful")
}
Only output valid JSON.`

// Planner turns a free-text prompt into a Brief.
type Planner struct {
	model TextModel
}

// NewPlanner creates a Planner backed by model.
func NewPlanner(model TextModel) *Planner {
	return &Planner{model: model}
}

// Plan asks the model for a brief. When tmpl is non-nil its platform and
// name always win over whatever the model returned. Unparseable output
// degrades to FallbackBrief; only transport errors are returned.
func (p *Planner) Plan(ctx context.Context, prompt string, tmpl *models.WorkflowTemplate) (models.Brief, error) {
	text, err := p.model.Generate(ctx, plannerSystem(tmpl), prompt)
	if err != nil {
		return models.Brief{}, fmt.Errorf("plan design: %w", err)
	}

	parsed := ai.ParseJSON(text, FallbackBrief(tmpl), validateBrief)
	if !parsed.OK {
		slog.Warn("planner output unparseable, using fallback brief", "error", parsed.Err)
		return parsed.Value, nil
	}

	brief := parsed.Value
	brief.Platform = models.Platform(strings.ToUpper(strings.TrimSpace(string(brief.Platform))))
	if brief.RequiredAssets == nil {
		brief.RequiredAssets = []string{}
	}
	if tmpl != nil {
		brief.Platform = tmpl.Platform
		brief.Template = tmpl.Name
	}
	return brief, nil
}

// FallbackBrief is the brief used when the model's answer cannot be read.
func FallbackBrief(tmpl *models.WorkflowTemplate) models.Brief {
	b := models.Brief{
		Platform:       models.PlatformInstagram,
		Template:       "custom",
		LayoutStyle:    "grid",
		RequiredAssets: []string{},
		Tone:           "neutral",
	}
	if tmpl != nil {
		b.Platform = tmpl.Platform
		b.Template = tmpl.Name
	}
	return b
}

func plannerSystem(tmpl *models.WorkflowTemplate) string {
	if tmpl == nil {
		return plannerSystemPrompt
	}
	return fmt.Sprintf("%s\nSTRICTLY FOLLOW THIS TEMPLATE:\nPlatform: %s\nInstructions: %s\nRequired Assets: %s",
		plannerSystemPrompt, tmpl.Platform, tmpl.AIInstructions, strings.Join(tmpl.RequiredInputs, ", "))
}

// validateBrief rejects objects that carry none of the brief's fields,
// such as {} or null.
func validateBrief(b models.Brief) error {
	if b.Platform == "" && b.LayoutStyle == "" && b.Tone == "" && b.Template == "" {
		return errors.New("brief has no known fields")
	}
	return nil
}
