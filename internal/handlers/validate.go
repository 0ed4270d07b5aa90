// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"brandstudio/internal/models"
)

// Validation limits for request fields.
const (
	maxPromptLen    = 2_000
	maxInputLen     = 500
	maxBrandNameLen = 200
	maxToneLen      = 500
	maxStyleLen     = 2_000
	maxKeywords     = 20
	maxElements     = 50
)

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// validateDesignRequest checks the free-text parts of a design request.
// An empty prompt is left to the pipeline, which may build one from a
// template.
func validateDesignRequest(prompt string, inputs map[string]string) string {
	if utf8.RuneCountInString(prompt) > maxPromptLen {
		return "Prompt is too long (max 2,000 characters)."
	}
	for _, k := range slices.Sorted(maps.Keys(inputs)) {
		if utf8.RuneCountInString(inputs[k]) > maxInputLen {
			return fmt.Sprintf("Input %q is too long (max 500 characters).", k)
		}
	}
	return ""
}

// validateProfile checks a brand profile body and returns the first error found.
func validateProfile(name, tone, style string, colors models.BrandColors, keywords []string) string {
	if utf8.RuneCountInString(strings.TrimSpace(name)) > maxBrandNameLen {
		return "Brand name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(tone) > maxToneLen {
		return "Tone of voice is too long (max 500 characters)."
	}
	if utf8.RuneCountInString(style) > maxStyleLen {
		return "Style description is too long (max 2,000 characters)."
	}
	if len(keywords) > maxKeywords {
		return "Too many keywords (max 20)."
	}
	for _, c := range []struct{ label, value string }{
		{"primary", colors.Primary},
		{"secondary", colors.Secondary},
		{"accent", colors.Accent},
	} {
		if c.value != "" && !hexColor.MatchString(c.value) {
			return fmt.Sprintf("Invalid %s color %q.", c.label, c.value)
		}
	}
	return ""
}

// validateDesign checks a design submitted for saving or export.
func validateDesign(d *models.Design) string {
	if len(d.Elements) == 0 {
		return "Design has no elements."
	}
	if len(d.Elements) > maxElements {
		return "Design has too many elements (max 50)."
	}
	return ""
}
