// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns brand and template names into safe file name parts.
package slug

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace      = regexp.MustCompile(`\s+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// maxLength keeps file names well under filesystem limits.
const maxLength = 60

// Generate lowercases s, drops anything that is not a letter, digit,
// space or hyphen, and joins words with single hyphens.
// Example: "Acme Coffee & Co." → "acme-coffee-co"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > maxLength {
		result = strings.TrimRight(result[:maxLength], "-")
	}
	return result
}

// Filename builds "<name>-<suffix>.<ext>" for downloads. An empty name
// becomes "design"; an empty suffix is dropped.
// Example: Filename("Acme Coffee", "1a2b3c4d", "png") → "acme-coffee-1a2b3c4d.png"
func Filename(name, suffix, ext string) string {
	base := Generate(name)
	if base == "" {
		base = "design"
	}
	if s := Generate(suffix); s != "" {
		base += "-" + s
	}
	return base + "." + strings.TrimPrefix(ext, ".")
}
