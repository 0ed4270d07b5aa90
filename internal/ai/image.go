// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
)

// ImageGenerator is an optional capability for providers that can create
// images (Gemini, OpenAI) and for image-only backends (Stability).
type ImageGenerator interface {
	// GenerateImage creates an image from a text prompt. Returns the raw
	// image bytes and the MIME content type (e.g., "image/png").
	GenerateImage(ctx context.Context, prompt string) ([]byte, string, error)
}

// GenerateImage calls the active image provider, which is selected
// independently from the text provider.
func (r *Registry) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	r.mu.RLock()
	ig, ok := r.imagers[r.activeImage]
	name := r.activeImage
	r.mu.RUnlock()

	if !ok {
		return nil, "", fmt.Errorf("ai: no image provider configured for %q", name)
	}
	return ig.GenerateImage(ctx, prompt)
}

// SupportsImageGeneration reports whether the active image provider is configured.
func (r *Registry) SupportsImageGeneration() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.imagers[r.activeImage]
	return ok
}
