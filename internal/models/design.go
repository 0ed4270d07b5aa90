// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ElementType is the kind of a design element.
type ElementType string

const (
	ElementText  ElementType = "text"
	ElementImage ElementType = "image"
	ElementShape ElementType = "shape"
)

// DesignElement is one positioned box on the canvas. X, Y, Width and Height
// are percentages (0-100) of the canvas size. The ID is load-bearing: the
// stylist matches "headline" and "body" substrings in it.
type DesignElement struct {
	ID         string      `json:"id,omitempty"`
	Type       ElementType `json:"type"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Text       string      `json:"text,omitempty"`
	Src        string      `json:"src,omitempty"`
	FontFamily string      `json:"fontFamily,omitempty"`
	Color      string      `json:"color,omitempty"`
}

// BrandColors is the three-color palette of a brand.
type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// BrandFonts is the font pairing of a brand.
type BrandFonts struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// BrandSnapshot is the brand metadata embedded in a Design.
type BrandSnapshot struct {
	Name   string      `json:"name"`
	Colors BrandColors `json:"colors"`
	Fonts  BrandFonts  `json:"fonts"`
	Tone   string      `json:"tone"`
}

// Design is the canonical output of the pipeline, consumed by the canvas
// and persisted as-is in a GeneratedPost.
type Design struct {
	Elements []DesignElement `json:"elements"`
	Brand    BrandSnapshot   `json:"brand"`
}

// Brief is the planner's structured reading of a free-text prompt.
type Brief struct {
	Platform       Platform `json:"platform"`
	Template       string   `json:"template"`
	LayoutStyle    string   `json:"layoutStyle"`
	RequiredAssets []string `json:"requiredAssets"`
	Tone           string   `json:"tone"`
}

// Content is the copy and imagery produced for a brief. ImageURL is empty
// when image generation failed.
type Content struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl"`
}

// BrandAnalysis is what the vision model infers from brand images.
type BrandAnalysis struct {
	BrandName        string      `json:"brandName"`
	Colors           BrandColors `json:"colors"`
	Fonts            BrandFonts  `json:"fonts"`
	ToneOfVoice      string      `json:"toneOfVoice"`
	StyleDescription string      `json:"styleDescription"`
	Keywords         []string    `json:"keywords"`
}
