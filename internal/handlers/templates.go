// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"brandstudio/internal/models"
)

// TemplateReader lists and finds workflow templates.
type TemplateReader interface {
	ListActive() ([]models.WorkflowTemplate, error)
	FindByID(id uuid.UUID) (*models.WorkflowTemplate, error)
}

// Templates serves the read-only template catalogue.
type Templates struct {
	templates TemplateReader
}

// NewTemplates creates the templates handler group.
func NewTemplates(templates TemplateReader) *Templates {
	return &Templates{templates: templates}
}

// List returns active templates ordered by name.
func (t *Templates) List(w http.ResponseWriter, r *http.Request) {
	list, err := t.templates.ListActive()
	if err != nil {
		slog.Error("list templates failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch templates")
		return
	}
	if list == nil {
		list = []models.WorkflowTemplate{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": list})
}

// Get returns one active template.
func (t *Templates) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Template not found")
		return
	}
	tmpl, err := t.templates.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to fetch template")
		return
	}
	if tmpl == nil || !tmpl.IsActive {
		writeError(w, http.StatusNotFound, "Template not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"template": tmpl})
}
