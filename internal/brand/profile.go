// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brand

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"brandstudio/internal/models"
)

// DefaultBrandName is used when a profile is saved without a name.
const DefaultBrandName = "Untitled Brand"

// ProfileRequest is the body of a "save brand profile" call: an analysis,
// possibly edited by the user, plus the images it was learned from.
type ProfileRequest struct {
	BrandName        string             `json:"brandName"`
	Colors           models.BrandColors `json:"colors"`
	Fonts            models.BrandFonts  `json:"fonts"`
	ToneOfVoice      string             `json:"toneOfVoice"`
	StyleDescription string             `json:"styleDescription"`
	Keywords         []string           `json:"keywords"`
	ImageURLs        []string           `json:"imageUrls"`
}

// NewProfile builds the row to insert for userID. raw is the original
// request body, kept verbatim under brand_style_json.fullAnalysis.
func NewProfile(userID uuid.UUID, req ProfileRequest, raw json.RawMessage) (*models.BrandProfile, error) {
	name := strings.TrimSpace(req.BrandName)
	if name == "" {
		name = DefaultBrandName
	}

	keywords := req.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	style, err := json.Marshal(models.BrandStyle{
		StyleDescription: req.StyleDescription,
		Keywords:         keywords,
		FullAnalysis:     raw,
	})
	if err != nil {
		return nil, fmt.Errorf("encode brand style: %w", err)
	}

	urls := req.ImageURLs
	if urls == nil {
		urls = []string{}
	}

	return &models.BrandProfile{
		UserID:          userID,
		BrandName:       name,
		PrimaryColor:    req.Colors.Primary,
		SecondaryColor:  req.Colors.Secondary,
		AccentColor:     req.Colors.Accent,
		FontPrimary:     req.Fonts.Primary,
		FontSecondary:   req.Fonts.Secondary,
		ToneOfVoice:     req.ToneOfVoice,
		BrandStyleJSON:  style,
		LearnedFromURLs: urls,
	}, nil
}
