// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"brandstudio/internal/design"
	"brandstudio/internal/middleware"
	"brandstudio/internal/models"
)

// Agent log page sizes.
const (
	defaultLogLimit = 50
	maxLogLimit     = 200
)

// Designer runs the design pipeline.
type Designer interface {
	Run(ctx context.Context, req design.Request) (*design.Result, error)
}

// AgentLogReader lists recorded agent runs.
type AgentLogReader interface {
	ListByUser(userID uuid.UUID, limit int) ([]models.AgentLog, error)
}

// Agents serves the generation endpoints.
type Agents struct {
	designer Designer
	logs     AgentLogReader
}

// NewAgents creates the agents handler group.
func NewAgents(designer Designer, logs AgentLogReader) *Agents {
	return &Agents{designer: designer, logs: logs}
}

type designRequest struct {
	Prompt     string            `json:"prompt"`
	TemplateID *string           `json:"templateId"`
	Inputs     map[string]string `json:"inputs"`
}

// Design runs plan, layout, content and style for the caller and returns
// the styled design.
func (a *Agents) Design(w http.ResponseWriter, r *http.Request) {
	var req designRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, errEmptyBody) {
			writeError(w, http.StatusBadRequest, "Prompt is required")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateDesignRequest(req.Prompt, req.Inputs); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	templateID, err := optionalID(req.TemplateID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid templateId")
		return
	}

	user := middleware.UserFromCtx(r.Context())
	result, err := a.designer.Run(r.Context(), design.Request{
		UserID:     user.ID,
		Prompt:     req.Prompt,
		TemplateID: templateID,
		Inputs:     req.Inputs,
	})
	switch {
	case errors.Is(err, design.ErrEmptyPrompt):
		writeError(w, http.StatusBadRequest, "Prompt is required")
		return
	case errors.Is(err, design.ErrMissingInput), errors.Is(err, design.ErrUnsafePrompt):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("design generation failed", "error", err, "user", user.ID)
		writeFailure(w, "Failed to generate design", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"design": result.Design})
}

// Logs returns the caller's most recent agent runs, newest first.
// ?limit= caps the page (default 50, max 200).
func (a *Agents) Logs(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLogLimit)
	}

	user := middleware.UserFromCtx(r.Context())
	logs, err := a.logs.ListByUser(user.ID, limit)
	if err != nil {
		slog.Error("list agent logs failed", "error", err, "user", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch agent logs")
		return
	}
	if logs == nil {
		logs = []models.AgentLog{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}
