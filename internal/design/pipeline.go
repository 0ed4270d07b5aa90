// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package design generates social post designs with a four-stage prompt
// pipeline: plan a brief, lay out elements, write copy and make an image,
// then merge the brand style into the result.
//
// The model-backed stages never fail on unreadable model output. Each one
// has a fixed fallback. Transport errors from the text model do propagate.
package design

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"brandstudio/internal/ai"
	"brandstudio/internal/models"
)

// AgentName is recorded on every audit row the pipeline writes.
const AgentName = "DesignOrchestrator"

// Sentinel errors for request-level failures. ErrEmptyPrompt,
// ErrMissingInput and ErrUnsafePrompt are caller mistakes.
var (
	ErrEmptyPrompt    = errors.New("prompt is required")
	ErrMissingInput   = errors.New("missing required template inputs")
	ErrUnsafePrompt   = errors.New("prompt was flagged by moderation")
	ErrNoBrandProfile = errors.New("brand profile not found")
)

// TextModel generates text from a system and user prompt.
type TextModel interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ImageModel generates an image from a prompt.
type ImageModel interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, string, error)
}

// Uploader stores generated bytes and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, folder, contentType string, data []byte) (string, error)
}

// PromptChecker screens prompts before any generation happens.
type PromptChecker interface {
	CheckPrompt(ctx context.Context, prompt string) (*ai.ModerationResult, error)
}

// TemplateFinder looks up a workflow template. Returns (nil, nil) if absent.
type TemplateFinder interface {
	FindByID(id uuid.UUID) (*models.WorkflowTemplate, error)
}

// ProfileFinder returns a user's most recent brand profile or (nil, nil).
type ProfileFinder interface {
	LatestForUser(userID uuid.UUID) (*models.BrandProfile, error)
}

// AgentLogger appends audit rows.
type AgentLogger interface {
	Append(userID uuid.UUID, agentName, inputPrompt string, output any) error
}

// Request is one design generation.
type Request struct {
	UserID     uuid.UUID
	Prompt     string
	TemplateID *uuid.UUID
	Inputs     map[string]string
}

// Result carries every stage's output. Design is what clients receive.
type Result struct {
	Prompt  string
	Brief   models.Brief
	Layout  []models.DesignElement
	Content models.Content
	Design  models.Design
}

// Pipeline runs the stages in order for one request at a time. It holds no
// per-request state and is safe for concurrent use.
type Pipeline struct {
	Planner   *Planner
	Layout    *LayoutGenerator
	Content   *ContentGenerator
	Templates TemplateFinder
	Profiles  ProfileFinder
	Moderator PromptChecker // optional
	Logs      AgentLogger   // optional
}

// NewPipeline wires the stages to a single text model.
func NewPipeline(text TextModel, images ImageModel, uploader Uploader, templates TemplateFinder, profiles ProfileFinder) *Pipeline {
	return &Pipeline{
		Planner:   NewPlanner(text),
		Layout:    NewLayoutGenerator(text),
		Content:   NewContentGenerator(text, images, uploader),
		Templates: templates,
		Profiles:  profiles,
	}
}

// Run generates a design. The brand profile is resolved only after the
// model stages, so a missing profile still costs the model calls.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	tmpl, err := p.resolveTemplate(req.TemplateID)
	if err != nil {
		return nil, err
	}

	prompt, err := effectivePrompt(req, tmpl)
	if err != nil {
		return nil, err
	}

	if err := p.screen(ctx, prompt); err != nil {
		return nil, err
	}

	brief, err := p.Planner.Plan(ctx, prompt, tmpl)
	if err != nil {
		return nil, err
	}
	layout, err := p.Layout.Generate(ctx, brief)
	if err != nil {
		return nil, err
	}
	content, err := p.Content.Generate(ctx, brief)
	if err != nil {
		return nil, err
	}

	profile, err := p.Profiles.LatestForUser(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load brand profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNoBrandProfile
	}

	design := ApplyBrandStyle(layout, content, profile)

	if p.Logs != nil {
		if err := p.Logs.Append(req.UserID, AgentName, prompt, design); err != nil {
			slog.Error("failed to write agent log", "error", err, "user_id", req.UserID)
		}
	}

	return &Result{
		Prompt:  prompt,
		Brief:   brief,
		Layout:  layout,
		Content: content,
		Design:  design,
	}, nil
}

// resolveTemplate treats an unknown or inactive id as "no template".
func (p *Pipeline) resolveTemplate(id *uuid.UUID) (*models.WorkflowTemplate, error) {
	if id == nil || p.Templates == nil {
		return nil, nil
	}
	tmpl, err := p.Templates.FindByID(*id)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	switch {
	case tmpl == nil:
		slog.Warn("unknown template id, planning without template", "template_id", *id)
	case !tmpl.IsActive:
		slog.Warn("inactive template, planning without template", "template_id", *id, "name", tmpl.Name)
		return nil, nil
	}
	return tmpl, nil
}

// screen fails open when the moderation service errors.
func (p *Pipeline) screen(ctx context.Context, prompt string) error {
	if p.Moderator == nil {
		return nil
	}
	result, err := p.Moderator.CheckPrompt(ctx, prompt)
	if err != nil {
		slog.Warn("moderation check failed, allowing prompt", "error", err)
		return nil
	}
	if result.Safe {
		return nil
	}
	categories := strings.Join(result.Categories, ", ")
	slog.Warn("prompt flagged by moderation", "categories", categories)
	return fmt.Errorf("%w: %s", ErrUnsafePrompt, categories)
}

// effectivePrompt renders the template's prompt from inputs when any are
// given. Free text sent alongside is appended as extra direction.
func effectivePrompt(req Request, tmpl *models.WorkflowTemplate) (string, error) {
	prompt := strings.TrimSpace(req.Prompt)

	if tmpl != nil && len(req.Inputs) > 0 {
		if missing := tmpl.MissingInputs(req.Inputs); len(missing) > 0 {
			return "", fmt.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
		}
		rendered := strings.TrimSpace(tmpl.RenderPrompt(req.Inputs))
		if prompt != "" && prompt != rendered {
			rendered += "\n" + prompt
		}
		prompt = rendered
	}

	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return prompt, nil
}
