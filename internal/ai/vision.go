// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"sort"
)

// VisionProvider is an optional capability for providers that accept image
// URLs alongside the prompt (Claude, OpenAI).
type VisionProvider interface {
	GenerateWithImages(ctx context.Context, systemPrompt, userPrompt string, imageURLs []string) (string, error)
}

// GenerateWithImages uses the active provider when it understands images
// and otherwise the first vision-capable provider by name.
func (r *Registry) GenerateWithImages(ctx context.Context, systemPrompt, userPrompt string, imageURLs []string) (string, error) {
	vp, err := r.vision()
	if err != nil {
		return "", err
	}
	return vp.GenerateWithImages(ctx, systemPrompt, userPrompt, imageURLs)
}

func (r *Registry) vision() (VisionProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if vp, ok := r.providers[r.active].(VisionProvider); ok {
		return vp, nil
	}

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if vp, ok := r.providers[name].(VisionProvider); ok {
			return vp, nil
		}
	}
	return nil, fmt.Errorf("ai: no vision-capable provider configured")
}
