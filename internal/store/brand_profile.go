// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"brandstudio/internal/models"
)

const brandProfileColumns = `id, user_id, brand_name, primary_color, secondary_color, accent_color,
	font_primary, font_secondary, tone_of_voice, brand_style_json, learned_from_urls,
	created_at, updated_at`

// BrandProfileStore handles brand profile persistence.
type BrandProfileStore struct {
	db *sql.DB
}

// NewBrandProfileStore creates a new BrandProfileStore.
func NewBrandProfileStore(db *sql.DB) *BrandProfileStore {
	return &BrandProfileStore{db: db}
}

func scanBrandProfile(row interface{ Scan(...any) error }) (*models.BrandProfile, error) {
	p := &models.BrandProfile{}
	var style, urls []byte
	if err := row.Scan(
		&p.ID, &p.UserID, &p.BrandName, &p.PrimaryColor, &p.SecondaryColor, &p.AccentColor,
		&p.FontPrimary, &p.FontSecondary, &p.ToneOfVoice, &style, &urls,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.BrandStyleJSON = json.RawMessage(style)
	if err := json.Unmarshal(urls, &p.LearnedFromURLs); err != nil {
		return nil, fmt.Errorf("decode learned_from_urls: %w", err)
	}
	return p, nil
}

// Create inserts a brand profile and returns the stored row.
func (s *BrandProfileStore) Create(p *models.BrandProfile) (*models.BrandProfile, error) {
	style := p.BrandStyleJSON
	if len(style) == 0 {
		style = json.RawMessage(`{}`)
	}
	urls := p.LearnedFromURLs
	if urls == nil {
		urls = []string{}
	}
	urlsJSON, err := json.Marshal(urls)
	if err != nil {
		return nil, fmt.Errorf("encode learned_from_urls: %w", err)
	}

	result, err := scanBrandProfile(s.db.QueryRow(`
		INSERT INTO brand_profiles
			(user_id, brand_name, primary_color, secondary_color, accent_color,
			 font_primary, font_secondary, tone_of_voice, brand_style_json, learned_from_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+brandProfileColumns,
		p.UserID, p.BrandName, p.PrimaryColor, p.SecondaryColor, p.AccentColor,
		p.FontPrimary, p.FontSecondary, p.ToneOfVoice, string(style), string(urlsJSON),
	))
	if err != nil {
		return nil, fmt.Errorf("create brand profile: %w", err)
	}
	return result, nil
}

// LatestForUser returns the user's most recently created profile, or nil
// if the user has none.
func (s *BrandProfileStore) LatestForUser(userID uuid.UUID) (*models.BrandProfile, error) {
	p, err := scanBrandProfile(s.db.QueryRow(`
		SELECT `+brandProfileColumns+`
		FROM brand_profiles WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest brand profile: %w", err)
	}
	return p, nil
}

// FindByID retrieves a brand profile by its UUID. Returns nil if not found.
func (s *BrandProfileStore) FindByID(id uuid.UUID) (*models.BrandProfile, error) {
	p, err := scanBrandProfile(s.db.QueryRow(`
		SELECT `+brandProfileColumns+` FROM brand_profiles WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find brand profile: %w", err)
	}
	return p, nil
}
