// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"brandstudio/internal/canvas"
	"brandstudio/internal/models"
	"brandstudio/internal/slug"
)

// Designs serves exports of unsaved designs straight from the editor.
type Designs struct {
	loader canvas.ImageLoader
}

// NewDesigns creates the designs handler group.
func NewDesigns(loader canvas.ImageLoader) *Designs {
	return &Designs{loader: loader}
}

type exportRequest struct {
	Design models.Design `json:"design"`
	Edits  []canvas.Edit `json:"edits"`
	Format string        `json:"format"`
}

// Export renders the posted design to PNG or JPEG. Pending editor edits
// (reorder, update, delete) are applied first.
func (d *Designs) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	format, err := canvas.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "format must be png or jpeg")
		return
	}

	doc := canvas.NewDocument(req.Design)
	if err := doc.Apply(req.Edits); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid edit: "+err.Error())
		return
	}
	design := doc.Design()
	if msg := validateDesign(&design); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if doc.Dirty() {
		slog.Debug("design edited before export", "edits", len(req.Edits), "elements", len(design.Elements))
	}
	writeExport(w, r, design, format, d.loader, time.Now().Format("20060102-150405"))
}

// writeExport rasterizes design and sends it as a download named after the
// brand.
func writeExport(w http.ResponseWriter, r *http.Request, design models.Design, format canvas.Format, loader canvas.ImageLoader, suffix string) {
	var buf bytes.Buffer
	doc := canvas.NewDocument(design)
	if err := doc.Export(r.Context(), &buf, format, loader); err != nil {
		slog.Error("design export failed", "error", err, "format", format)
		writeFailure(w, "Failed to export design", err)
		return
	}

	name := slug.Filename(design.Brand.Name, suffix, format.Extension())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}
