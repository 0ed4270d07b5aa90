// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSONObject is returned by ExtractJSONObject when text holds no {...} span.
var ErrNoJSONObject = errors.New("ai: no JSON object in response")

// Parsed is the outcome of decoding model output. When OK is false, Value
// holds the caller's fallback and Err says why decoding was rejected.
type Parsed[T any] struct {
	Value T
	OK    bool
	Err   error
}

// ParseJSON decodes model text into T. Markdown code fences are stripped
// first. validate, if non-nil, rejects well-formed JSON of the wrong shape.
// On any failure the fallback is returned with OK=false.
func ParseJSON[T any](text string, fallback T, validate func(T) error) Parsed[T] {
	var v T
	if err := json.Unmarshal([]byte(StripCodeFence(text)), &v); err != nil {
		return Parsed[T]{Value: fallback, Err: fmt.Errorf("decode: %w", err)}
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return Parsed[T]{Value: fallback, Err: fmt.Errorf("validate: %w", err)}
		}
	}
	return Parsed[T]{Value: v, OK: true}
}

// StripCodeFence removes a surrounding ```json ... ``` block if present.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ExtractJSONObject returns the span from the first '{' to the last '}'.
// Models often wrap the object in prose; the span is not validated.
func ExtractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}
