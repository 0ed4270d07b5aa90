// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"golang.org/x/sync/errgroup"

	"brandstudio/internal/brand"
	"brandstudio/internal/imaging"
	"brandstudio/internal/middleware"
	"brandstudio/internal/models"
	"brandstudio/internal/storage"
)

const (
	// maxBrandImages is the most files one upload may carry.
	maxBrandImages = 5

	// maxBrandImageSize is the per-file limit (10 MB).
	maxBrandImageSize = 10 << 20

	// maxBrandUploadBody bounds the whole multipart body.
	maxBrandUploadBody = maxBrandImages*maxBrandImageSize + 1<<20
)

// allowedImageTypes defines sniffed MIME types accepted for brand uploads.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ImageUploader stores image bytes and returns a public URL.
type ImageUploader interface {
	Upload(ctx context.Context, folder, contentType string, data []byte) (string, error)
}

// BrandAnalyzer infers a brand identity from image URLs.
type BrandAnalyzer interface {
	Analyze(ctx context.Context, imageURLs []string) (*models.BrandAnalysis, error)
}

// ProfileCreator persists brand profiles.
type ProfileCreator interface {
	Create(p *models.BrandProfile) (*models.BrandProfile, error)
}

// Brand serves the brand learning endpoints.
type Brand struct {
	uploader ImageUploader
	analyzer BrandAnalyzer
	profiles ProfileCreator
}

// NewBrand creates the brand handler group. uploader may be nil when
// object storage is not configured.
func NewBrand(uploader ImageUploader, analyzer BrandAnalyzer, profiles ProfileCreator) *Brand {
	return &Brand{uploader: uploader, analyzer: analyzer, profiles: profiles}
}

// Upload stores 1 to 5 brand images and returns their URLs in request order.
func (b *Brand) Upload(w http.ResponseWriter, r *http.Request) {
	if b.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBrandUploadBody)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "Upload too large. Maximum is 5 images of 10 MB each.")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "No images provided")
		return
	}
	if len(headers) > maxBrandImages {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Too many images. Maximum is %d.", maxBrandImages))
		return
	}

	uploads := make([]*imaging.Upload, len(headers))
	for i, h := range headers {
		up, msg := readBrandImage(h)
		if msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		uploads[i] = up
	}

	urls := make([]string, len(uploads))
	g, ctx := errgroup.WithContext(r.Context())
	for i, up := range uploads {
		g.Go(func() error {
			url, err := b.uploader.Upload(ctx, storage.FolderBrandUploads, up.ContentType, up.Data)
			if err != nil {
				return fmt.Errorf("upload %s: %w", headers[i].Filename, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("brand image upload failed", "error", err)
		writeFailure(w, "Failed to upload images", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"urls": urls})
}

// readBrandImage validates one multipart file and prepares it for storage.
// A non-empty message is a client error.
func readBrandImage(h *multipart.FileHeader) (*imaging.Upload, string) {
	if h.Size > maxBrandImageSize {
		return nil, fmt.Sprintf("%s is too large. Maximum size is 10 MB.", h.Filename)
	}
	f, err := h.Open()
	if err != nil {
		return nil, fmt.Sprintf("Failed to read %s.", h.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBrandImageSize+1))
	if err != nil {
		return nil, fmt.Sprintf("Failed to read %s.", h.Filename)
	}
	if len(data) > maxBrandImageSize {
		return nil, fmt.Sprintf("%s is too large. Maximum size is 10 MB.", h.Filename)
	}
	if ct := http.DetectContentType(data); !allowedImageTypes[ct] {
		return nil, fmt.Sprintf("%s is not an image (%s).", h.Filename, ct)
	}

	up, err := imaging.Prepare(data)
	if errors.Is(err, imaging.ErrTooLarge) {
		return nil, fmt.Sprintf("%s has too many pixels.", h.Filename)
	}
	if err != nil {
		return nil, fmt.Sprintf("%s could not be decoded as an image.", h.Filename)
	}
	if up.Resized {
		slog.Debug("brand image downscaled", "file", h.Filename, "width", up.Width, "height", up.Height)
	}
	return up, ""
}

type analyzeRequest struct {
	URLs []string `json:"urls"`
}

// Analyze asks the vision model for a brand analysis of the given URLs.
func (b *Brand) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.URLs) == 0 {
		writeError(w, http.StatusBadRequest, "No image URLs provided")
		return
	}

	analysis, err := b.analyzer.Analyze(r.Context(), req.URLs)
	if errors.Is(err, brand.ErrNoImages) {
		writeError(w, http.StatusBadRequest, "No image URLs provided")
		return
	}
	if err != nil {
		slog.Error("brand analysis failed", "error", err, "images", len(req.URLs))
		writeFailure(w, "Failed to analyze brand", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"analysis": analysis})
}

// Create saves a brand profile for the caller. The raw body is kept in the
// profile's style JSON.
func (b *Brand) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var req brand.ProfileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateProfile(req.BrandName, req.ToneOfVoice, req.StyleDescription, req.Colors, req.Keywords); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	user := middleware.UserFromCtx(r.Context())
	profile, err := brand.NewProfile(user.ID, req, body)
	if err != nil {
		writeFailure(w, "Failed to create brand profile", err)
		return
	}
	created, err := b.profiles.Create(profile)
	if err != nil {
		slog.Error("brand profile insert failed", "error", err, "user", user.ID)
		writeFailure(w, "Failed to create brand profile", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"brandProfile": created,
	})
}
