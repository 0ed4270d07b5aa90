// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BrandProfile is a saved visual identity: colors, fonts and voice, usually
// inferred from uploaded brand images.
type BrandProfile struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	BrandName       string          `json:"brandName"`
	PrimaryColor    string          `json:"primaryColor"`
	SecondaryColor  string          `json:"secondaryColor"`
	AccentColor     string          `json:"accentColor"`
	FontPrimary     string          `json:"fontPrimary"`
	FontSecondary   string          `json:"fontSecondary"`
	ToneOfVoice     string          `json:"toneOfVoice"`
	BrandStyleJSON  json.RawMessage `json:"brandStyleJson"`
	LearnedFromURLs []string        `json:"learnedFromUrls"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// BrandStyle is the free-form part of a profile kept in brand_style_json.
// FullAnalysis holds the raw request body the profile was created from.
type BrandStyle struct {
	StyleDescription string          `json:"styleDescription"`
	Keywords         []string        `json:"keywords"`
	FullAnalysis     json.RawMessage `json:"fullAnalysis,omitempty"`
}

// Snapshot copies the fields a design embeds so it can be rendered later
// without the live profile row.
func (p *BrandProfile) Snapshot() BrandSnapshot {
	return BrandSnapshot{
		Name: p.BrandName,
		Colors: BrandColors{
			Primary:   p.PrimaryColor,
			Secondary: p.SecondaryColor,
			Accent:    p.AccentColor,
		},
		Fonts: BrandFonts{
			Primary:   p.FontPrimary,
			Secondary: p.FontSecondary,
		},
		Tone: p.ToneOfVoice,
	}
}
