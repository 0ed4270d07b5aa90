// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GeneratedPost is a design the user chose to save. ElementsJSON holds the
// full Design so the post renders without its template or brand profile.
type GeneratedPost struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	TemplateID     *uuid.UUID      `json:"templateId"`
	BrandProfileID *uuid.UUID      `json:"brandProfileId"`
	Platform       Platform        `json:"platform"`
	PromptUsed     string          `json:"promptUsed"`
	ElementsJSON   json.RawMessage `json:"elementsJson"`
	IsFavorite     bool            `json:"isFavorite"`
	CreatedAt      time.Time       `json:"createdAt"`

	// Populated by list/find queries; nil when the reference is gone.
	Template     *TemplateSummary `json:"template"`
	BrandProfile *BrandSummary    `json:"brandProfile"`
}

// TemplateSummary is the part of a template shown next to a saved post.
type TemplateSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Platform Platform  `json:"platform"`
}

// BrandSummary is the part of a brand profile shown next to a saved post.
type BrandSummary struct {
	ID           uuid.UUID `json:"id"`
	BrandName    string    `json:"brandName"`
	PrimaryColor string    `json:"primaryColor"`
}

// Design decodes ElementsJSON.
func (p *GeneratedPost) Design() (*Design, error) {
	var d Design
	if err := json.Unmarshal(p.ElementsJSON, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// AgentLog is an audit row written after a pipeline run.
type AgentLog struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	AgentName   string          `json:"agentName"`
	InputPrompt string          `json:"inputPrompt"`
	OutputJSON  json.RawMessage `json:"outputJson"`
	CreatedAt   time.Time       `json:"createdAt"`
}
