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

const templateColumns = `id, name, platform, icon_url, prompt_template, required_inputs,
	ai_instructions, preview_image_url, dimensions, is_active, created_at`

// TemplateStore reads workflow templates. Templates are seeded reference
// data, so there are no write methods.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

func scanTemplate(row interface{ Scan(...any) error }) (*models.WorkflowTemplate, error) {
	t := &models.WorkflowTemplate{}
	var inputs, dims []byte
	if err := row.Scan(
		&t.ID, &t.Name, &t.Platform, &t.IconURL, &t.PromptTemplate, &inputs,
		&t.AIInstructions, &t.PreviewImageURL, &dims, &t.IsActive, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputs, &t.RequiredInputs); err != nil {
		return nil, fmt.Errorf("decode required_inputs: %w", err)
	}
	if err := json.Unmarshal(dims, &t.Dimensions); err != nil {
		return nil, fmt.Errorf("decode dimensions: %w", err)
	}
	return t, nil
}

// ListActive returns all active templates ordered by name.
func (s *TemplateStore) ListActive() ([]models.WorkflowTemplate, error) {
	rows, err := s.db.Query(`
		SELECT ` + templateColumns + `
		FROM workflow_templates
		WHERE is_active = TRUE
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := []models.WorkflowTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// FindByID retrieves a template by its UUID. Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.WorkflowTemplate, error) {
	t, err := scanTemplate(s.db.QueryRow(`
		SELECT `+templateColumns+` FROM workflow_templates WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}
