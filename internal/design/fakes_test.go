// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package design

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"brandstudio/internal/ai"
	"brandstudio/internal/models"
)

// scriptedModel answers by stage, recognised from the system prompt.
type scriptedModel struct {
	mu      sync.Mutex
	plan    string
	layout  string
	copy    string
	err     error
	prompts map[string]string // stage -> last user prompt
	systems map[string]string // stage -> last system prompt
}

func (m *scriptedModel) Generate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prompts == nil {
		m.prompts = map[string]string{}
		m.systems = map[string]string{}
	}

	stage := "copy"
	switch {
	case len(systemPrompt) >= len(plannerSystemPrompt) && systemPrompt[:len(plannerSystemPrompt)] == plannerSystemPrompt:
		stage = "plan"
	case systemPrompt == layoutSystemPrompt:
		stage = "layout"
	}
	m.prompts[stage] = userPrompt
	m.systems[stage] = systemPrompt

	if m.err != nil {
		return "", m.err
	}
	switch stage {
	case "plan":
		return m.plan, nil
	case "layout":
		return m.layout, nil
	}
	return m.copy, nil
}

type fakeImages struct {
	data []byte
	ct   string
	err  error
}

func (f *fakeImages) GenerateImage(context.Context, string) ([]byte, string, error) {
	return f.data, f.ct, f.err
}

type fakeUploader struct {
	mu      sync.Mutex
	folder  string
	ct      string
	payload []byte
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, folder, contentType string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folder, f.ct, f.payload = folder, contentType, data
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + folder + "/img.png", nil
}

type fakeTemplates map[uuid.UUID]*models.WorkflowTemplate

func (f fakeTemplates) FindByID(id uuid.UUID) (*models.WorkflowTemplate, error) {
	return f[id], nil
}

type fakeProfiles struct {
	profile *models.BrandProfile
	err     error
}

func (f *fakeProfiles) LatestForUser(uuid.UUID) (*models.BrandProfile, error) {
	return f.profile, f.err
}

type logEntry struct {
	userID uuid.UUID
	agent  string
	prompt string
	output any
}

type fakeLogs struct {
	entries []logEntry
	err     error
}

func (f *fakeLogs) Append(userID uuid.UUID, agentName, inputPrompt string, output any) error {
	f.entries = append(f.entries, logEntry{userID, agentName, inputPrompt, output})
	return f.err
}

type fakeModerator struct {
	result *ai.ModerationResult
	err    error
}

func (f *fakeModerator) CheckPrompt(context.Context, string) (*ai.ModerationResult, error) {
	return f.result, f.err
}

var errUpstream = errors.New("upstream unavailable")

func testProfile() *models.BrandProfile {
	return &models.BrandProfile{
		ID:             uuid.New(),
		BrandName:      "Acme Coffee",
		PrimaryColor:   "#3B2F2F",
		SecondaryColor: "#F5E6CC",
		AccentColor:    "#D2691E",
		FontPrimary:    "Playfair Display",
		FontSecondary:  "Lato",
		ToneOfVoice:    "Warm",
	}
}

func instagramTemplate() *models.WorkflowTemplate {
	return &models.WorkflowTemplate{
		ID:             uuid.New(),
		Name:           "Instagram Post",
		Platform:       models.PlatformInstagram,
		PromptTemplate: "Create an Instagram post about {topic} for {audience}",
		RequiredInputs: []string{"topic", "audience"},
		AIInstructions: "Square format, bold visuals.",
		IsActive:       true,
	}
}
