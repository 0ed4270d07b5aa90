// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brand

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"brandstudio/internal/ai"
	"brandstudio/internal/models"
)

type fakeVision struct {
	response string
	err      error
	gotURLs  []string
	gotUser  string
}

func (f *fakeVision) GenerateWithImages(_ context.Context, _, userPrompt string, imageURLs []string) (string, error) {
	f.gotURLs = imageURLs
	f.gotUser = userPrompt
	return f.response, f.err
}

const sampleAnalysis = `{
  "brandName": "Acme Coffee",
  "colors": {"primary": "#3B2F2F", "secondary": "#F5E6CC", "accent": "#D2691E"},
  "fonts": {"primary": "Playfair Display", "secondary": "Lato"},
  "toneOfVoice": "Warm, Artisanal, Friendly",
  "styleDescription": "Earthy tones with hand-drawn accents.",
  "keywords": ["warm", "rustic", "handmade", "cozy", "organic"]
}`

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantName string
	}{
		{"bare object", sampleAnalysis, "Acme Coffee"},
		{"prose around object", "Sure! Here is the analysis:\n" + sampleAnalysis + "\nLet me know.", "Acme Coffee"},
		{"code fence", "```json\n" + sampleAnalysis + "\n```", "Acme Coffee"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv := &fakeVision{response: tt.response}
			got, err := NewAnalyzer(fv).Analyze(context.Background(), []string{"https://cdn.example.com/a.png"})
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if got.BrandName != tt.wantName || got.Colors.Accent != "#D2691E" || len(got.Keywords) != 5 {
				t.Errorf("analysis = %+v", got)
			}
			if !strings.Contains(fv.gotUser, `"toneOfVoice"`) {
				t.Error("prompt should describe the expected JSON shape")
			}
		})
	}
}

func TestAnalyze_Failures(t *testing.T) {
	tests := []struct {
		name    string
		urls    []string
		fake    *fakeVision
		wantIs  error
		wantErr bool
	}{
		{"no urls", nil, &fakeVision{}, ErrNoImages, true},
		{"only blank urls", []string{" ", ""}, &fakeVision{}, ErrNoImages, true},
		{"transport error", []string{"u"}, &fakeVision{err: errors.New("503")}, nil, true},
		{"no json", []string{"u"}, &fakeVision{response: "I cannot see any images."}, ai.ErrNoJSONObject, true},
		{"broken json", []string{"u"}, &fakeVision{response: `{"brandName": }`}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnalyzer(tt.fake).Analyze(context.Background(), tt.urls)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("err = %v, want %v", err, tt.wantIs)
			}
		})
	}
}

func TestAnalyze_TrimsURLs(t *testing.T) {
	fv := &fakeVision{response: sampleAnalysis}
	if _, err := NewAnalyzer(fv).Analyze(context.Background(), []string{" a ", "", "b"}); err != nil {
		t.Fatal(err)
	}
	if len(fv.gotURLs) != 2 || fv.gotURLs[0] != "a" || fv.gotURLs[1] != "b" {
		t.Errorf("urls sent = %q", fv.gotURLs)
	}
}

func TestNewProfile(t *testing.T) {
	userID := uuid.New()
	raw := json.RawMessage(`{"brandName":"Acme","extra":true}`)
	req := ProfileRequest{
		BrandName:        "Acme",
		Colors:           models.BrandColors{Primary: "#111", Secondary: "#222", Accent: "#333"},
		Fonts:            models.BrandFonts{Primary: "Inter", Secondary: "Lora"},
		ToneOfVoice:      "bold",
		StyleDescription: "Clean.",
		Keywords:         []string{"clean"},
		ImageURLs:        []string{"https://cdn.example.com/a.png"},
	}

	p, err := NewProfile(userID, req, raw)
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}
	if p.UserID != userID || p.BrandName != "Acme" || p.PrimaryColor != "#111" || p.FontSecondary != "Lora" {
		t.Errorf("profile = %+v", p)
	}
	if len(p.LearnedFromURLs) != 1 {
		t.Errorf("LearnedFromURLs = %v", p.LearnedFromURLs)
	}

	var style models.BrandStyle
	if err := json.Unmarshal(p.BrandStyleJSON, &style); err != nil {
		t.Fatalf("style json: %v", err)
	}
	if style.StyleDescription != "Clean." || len(style.Keywords) != 1 {
		t.Errorf("style = %+v", style)
	}
	if !strings.Contains(string(style.FullAnalysis), `"extra":true`) {
		t.Errorf("fullAnalysis should keep the raw body, got %s", style.FullAnalysis)
	}
}

func TestNewProfile_Defaults(t *testing.T) {
	p, err := NewProfile(uuid.New(), ProfileRequest{BrandName: "  "}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.BrandName != DefaultBrandName {
		t.Errorf("BrandName = %q, want %q", p.BrandName, DefaultBrandName)
	}
	if p.LearnedFromURLs == nil {
		t.Error("LearnedFromURLs should be an empty slice, not nil")
	}
	if !strings.Contains(string(p.BrandStyleJSON), `"keywords":[]`) {
		t.Errorf("style = %s", p.BrandStyleJSON)
	}
}
