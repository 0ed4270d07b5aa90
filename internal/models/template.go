// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Platform is the social network a design targets.
type Platform string

const (
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformLinkedIn  Platform = "LINKEDIN"
	PlatformTwitter   Platform = "TWITTER"
	PlatformFacebook  Platform = "FACEBOOK"
)

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformInstagram, PlatformLinkedIn, PlatformTwitter, PlatformFacebook:
		return true
	}
	return false
}

// Dimensions is the target pixel size of a template's output.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WorkflowTemplate is seeded reference data that steers the planner toward
// a platform and a set of inputs. PromptTemplate contains {placeholder}
// tokens named after RequiredInputs.
type WorkflowTemplate struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Platform        Platform   `json:"platform"`
	IconURL         string     `json:"iconUrl"`
	PromptTemplate  string     `json:"promptTemplate"`
	RequiredInputs  []string   `json:"requiredInputs"`
	AIInstructions  string     `json:"aiInstructions"`
	PreviewImageURL string     `json:"previewImageUrl"`
	Dimensions      Dimensions `json:"dimensions"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// MissingInputs returns the required inputs that are absent or blank.
func (t *WorkflowTemplate) MissingInputs(inputs map[string]string) []string {
	var missing []string
	for _, key := range t.RequiredInputs {
		if strings.TrimSpace(inputs[key]) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// RenderPrompt substitutes every {key} token with inputs[key]. Unknown
// tokens are left untouched.
func (t *WorkflowTemplate) RenderPrompt(inputs map[string]string) string {
	pairs := make([]string, 0, len(inputs)*2)
	for k, v := range inputs {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(t.PromptTemplate)
}
