// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"brandstudio/internal/canvas"
	"brandstudio/internal/middleware"
	"brandstudio/internal/models"
	"brandstudio/internal/store"
)

// qrSize is the edge length of share QR codes in pixels.
const qrSize = 256

// PostRepository persists saved posts.
type PostRepository interface {
	Create(p *models.GeneratedPost) (*models.GeneratedPost, error)
	ListByUser(userID uuid.UUID) ([]models.GeneratedPost, error)
	FindByID(id uuid.UUID) (*models.GeneratedPost, error)
	Delete(id uuid.UUID) error
}

// ProfileFinder looks up a brand profile so a post can reference it.
type ProfileFinder interface {
	FindByID(id uuid.UUID) (*models.BrandProfile, error)
}

// Posts serves the saved post gallery, exports and share codes.
type Posts struct {
	posts       PostRepository
	profiles    ProfileFinder
	loader      canvas.ImageLoader
	frontendURL string
}

// NewPosts creates the posts handler group. loader fetches images for
// exports; frontendURL is the base of share links.
func NewPosts(posts PostRepository, profiles ProfileFinder, loader canvas.ImageLoader, frontendURL string) *Posts {
	return &Posts{
		posts:       posts,
		profiles:    profiles,
		loader:      loader,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

type createPostRequest struct {
	ElementsJSON   json.RawMessage `json:"elementsJson"`
	PromptUsed     string          `json:"promptUsed"`
	Platform       string          `json:"platform"`
	TemplateID     *string         `json:"templateId"`
	BrandProfileID *string         `json:"brandProfileId"`
}

// Create saves a design to the caller's gallery.
func (p *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var d models.Design
	if len(req.ElementsJSON) == 0 || json.Unmarshal(req.ElementsJSON, &d) != nil {
		writeError(w, http.StatusBadRequest, "elementsJson must be a design object")
		return
	}
	if msg := validateDesign(&d); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	platform := models.PlatformInstagram
	if req.Platform != "" {
		platform = models.Platform(strings.ToUpper(req.Platform))
	}
	if !platform.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown platform")
		return
	}
	templateID, err := optionalID(req.TemplateID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid templateId")
		return
	}
	profileID, err := optionalID(req.BrandProfileID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid brandProfileId")
		return
	}

	user := middleware.UserFromCtx(r.Context())
	if profileID != nil {
		profile, err := p.profiles.FindByID(*profileID)
		if err != nil {
			slog.Error("find brand profile failed", "error", err, "profile", *profileID)
			writeError(w, http.StatusInternalServerError, "Failed to save post")
			return
		}
		if profile == nil || profile.UserID != user.ID {
			writeError(w, http.StatusBadRequest, "Unknown brandProfileId")
			return
		}
	}

	post, err := p.posts.Create(&models.GeneratedPost{
		UserID:         user.ID,
		TemplateID:     templateID,
		BrandProfileID: profileID,
		Platform:       platform,
		PromptUsed:     req.PromptUsed,
		ElementsJSON:   req.ElementsJSON,
	})
	if err != nil {
		slog.Error("save post failed", "error", err, "user", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to save post")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}

// List returns the caller's posts, newest first.
func (p *Posts) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	posts, err := p.posts.ListByUser(user.ID)
	if err != nil {
		slog.Error("list posts failed", "error", err, "user", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}
	if posts == nil {
		posts = []models.GeneratedPost{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// Get returns one of the caller's posts.
func (p *Posts) Get(w http.ResponseWriter, r *http.Request) {
	post, ok := p.find(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}

// Delete removes one of the caller's posts.
func (p *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	post, ok := p.find(w, r)
	if !ok {
		return
	}
	err := p.posts.Delete(post.ID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		slog.Error("delete post failed", "error", err, "id", post.ID)
		writeError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Export renders a saved post to PNG or JPEG.
func (p *Posts) Export(w http.ResponseWriter, r *http.Request) {
	format, err := canvas.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "format must be png or jpeg")
		return
	}
	post, ok := p.find(w, r)
	if !ok {
		return
	}
	d, err := post.Design()
	if err != nil {
		slog.Error("stored design is unreadable", "error", err, "id", post.ID)
		writeError(w, http.StatusInternalServerError, "Failed to read design")
		return
	}
	writeExport(w, r, *d, format, p.loader, post.ID.String()[:8])
}

// QR returns a PNG QR code pointing at the post's share page.
func (p *Posts) QR(w http.ResponseWriter, r *http.Request) {
	post, ok := p.find(w, r)
	if !ok {
		return
	}
	png, err := qrcode.Encode(p.ShareURL(post.ID), qrcode.Medium, qrSize)
	if err != nil {
		slog.Error("qr encode failed", "error", err, "id", post.ID)
		writeError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// ShareURL is the frontend page that displays a saved post.
func (p *Posts) ShareURL(id uuid.UUID) string {
	return p.frontendURL + "/share/" + id.String()
}

// find loads the {id} post and checks it belongs to the caller. It writes
// the error response itself and reports whether the caller may continue.
func (p *Posts) find(w http.ResponseWriter, r *http.Request) (*models.GeneratedPost, bool) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return nil, false
	}
	post, err := p.posts.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to fetch post")
		return nil, false
	}
	user := middleware.UserFromCtx(r.Context())
	if post == nil || post.UserID != user.ID {
		writeError(w, http.StatusNotFound, "Post not found")
		return nil, false
	}
	return post, true
}
