// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"brandstudio/internal/models"
)

// DemoPassword is the password of the seeded demo account.
const DemoPassword = "password123"

// DefaultTemplates are the workflow templates every installation starts with.
var DefaultTemplates = []models.WorkflowTemplate{
	{
		Name:            "Instagram Post",
		Platform:        models.PlatformInstagram,
		IconURL:         "https://cdn-icons-png.flaticon.com/512/174/174855.png",
		PromptTemplate:  "Create a visually engaging Instagram post about {topic}. Key message: {message}. Vibe: {vibe}.",
		RequiredInputs:  []string{"topic", "message", "vibe"},
		AIInstructions:  "Focus on strong visual hierarchy, bold typography, and high-quality imagery suitable for a square format.",
		PreviewImageURL: "https://via.placeholder.com/1080x1080?text=IG+Post",
		Dimensions:      models.Dimensions{Width: 1080, Height: 1080},
	},
	{
		Name:            "LinkedIn Post",
		Platform:        models.PlatformLinkedIn,
		IconURL:         "https://cdn-icons-png.flaticon.com/512/174/174857.png",
		PromptTemplate:  "Create a professional LinkedIn post about {topic}. Professional insight: {insight}. Call to action: {cta}.",
		RequiredInputs:  []string{"topic", "insight", "cta"},
		AIInstructions:  "Use a clean, professional layout. Emphasize the text content and insight. Use corporate-friendly colors.",
		PreviewImageURL: "https://via.placeholder.com/1080x1350?text=LinkedIn+Post",
		Dimensions:      models.Dimensions{Width: 1080, Height: 1350},
	},
	{
		Name:            "Twitter Quote",
		Platform:        models.PlatformTwitter,
		IconURL:         "https://cdn-icons-png.flaticon.com/512/733/733579.png",
		PromptTemplate:  `Create a Twitter quote card for: "{quote}" by {author}.`,
		RequiredInputs:  []string{"quote", "author"},
		AIInstructions:  "Minimalist design. Large, readable typography for the quote. High contrast.",
		PreviewImageURL: "https://via.placeholder.com/1600x900?text=Twitter+Quote",
		Dimensions:      models.Dimensions{Width: 1600, Height: 900},
	},
}

// Seed creates the demo user and the default templates. Existing rows are
// left untouched, so Seed is safe to run on every start.
func Seed(db *sql.DB, demoEmail string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	res, err := db.Exec(`
		INSERT INTO users (email, password_hash, name, subscription_tier, credits_remaining)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
	`, demoEmail, string(hash), "Demo User", models.TierPro, 100)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Info("seeded demo user", "email", demoEmail, "password", DemoPassword)
	}

	inserted := 0
	for _, t := range DefaultTemplates {
		inputs, err := json.Marshal(t.RequiredInputs)
		if err != nil {
			return fmt.Errorf("seed template %s inputs: %w", t.Name, err)
		}
		dims, err := json.Marshal(t.Dimensions)
		if err != nil {
			return fmt.Errorf("seed template %s dimensions: %w", t.Name, err)
		}

		res, err := db.Exec(`
			INSERT INTO workflow_templates
				(name, platform, icon_url, prompt_template, required_inputs,
				 ai_instructions, preview_image_url, dimensions)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (name) DO NOTHING
		`, t.Name, t.Platform, t.IconURL, t.PromptTemplate, string(inputs),
			t.AIInstructions, t.PreviewImageURL, string(dims))
		if err != nil {
			return fmt.Errorf("seed template %s: %w", t.Name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if inserted > 0 {
		slog.Info("seeded workflow templates", "count", inserted)
	} else {
		slog.Info("database already seeded, skipping")
	}
	return nil
}
