// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"brandstudio/internal/models"
)

// ErrNotFound is returned by mutations that target a missing row.
var ErrNotFound = errors.New("store: not found")

// postSelect joins the optional template and brand profile summaries.
const postSelect = `
	SELECT p.id, p.user_id, p.template_id, p.brand_profile_id, p.platform,
	       p.prompt_used, p.elements_json, p.is_favorite, p.created_at,
	       t.name, t.platform, b.brand_name, b.primary_color
	FROM generated_posts p
	LEFT JOIN workflow_templates t ON t.id = p.template_id
	LEFT JOIN brand_profiles b ON b.id = p.brand_profile_id`

// PostStore handles saved post persistence.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

func scanPost(row interface{ Scan(...any) error }) (*models.GeneratedPost, error) {
	p := &models.GeneratedPost{}
	var (
		elements             []byte
		tmplName, tmplPlat   sql.NullString
		brandName, brandPrim sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.UserID, &p.TemplateID, &p.BrandProfileID, &p.Platform,
		&p.PromptUsed, &elements, &p.IsFavorite, &p.CreatedAt,
		&tmplName, &tmplPlat, &brandName, &brandPrim,
	); err != nil {
		return nil, err
	}
	p.ElementsJSON = json.RawMessage(elements)

	if p.TemplateID != nil && tmplName.Valid {
		p.Template = &models.TemplateSummary{
			ID:       *p.TemplateID,
			Name:     tmplName.String,
			Platform: models.Platform(tmplPlat.String),
		}
	}
	if p.BrandProfileID != nil && brandName.Valid {
		p.BrandProfile = &models.BrandSummary{
			ID:           *p.BrandProfileID,
			BrandName:    brandName.String,
			PrimaryColor: brandPrim.String,
		}
	}
	return p, nil
}

// Create inserts a post. The returned post carries no summaries.
func (s *PostStore) Create(p *models.GeneratedPost) (*models.GeneratedPost, error) {
	result := &models.GeneratedPost{}
	var elements []byte
	err := s.db.QueryRow(`
		INSERT INTO generated_posts
			(user_id, template_id, brand_profile_id, platform, prompt_used, elements_json, is_favorite)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, template_id, brand_profile_id, platform, prompt_used,
		          elements_json, is_favorite, created_at
	`, p.UserID, p.TemplateID, p.BrandProfileID, p.Platform, p.PromptUsed,
		string(p.ElementsJSON), p.IsFavorite,
	).Scan(
		&result.ID, &result.UserID, &result.TemplateID, &result.BrandProfileID,
		&result.Platform, &result.PromptUsed, &elements, &result.IsFavorite, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	result.ElementsJSON = json.RawMessage(elements)
	return result, nil
}

// ListByUser returns the user's posts, newest first.
func (s *PostStore) ListByUser(userID uuid.UUID) ([]models.GeneratedPost, error) {
	rows, err := s.db.Query(postSelect+`
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.GeneratedPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.GeneratedPost, error) {
	p, err := scanPost(s.db.QueryRow(postSelect+` WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	return p, nil
}

// Delete removes a post. Returns ErrNotFound if no row matched.
func (s *PostStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM generated_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
