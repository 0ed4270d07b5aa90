// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestNew_DisabledWithoutCredentials(t *testing.T) {
	c, err := New("", "fsn1", "", "", "bucket", "")
	if err != nil || c != nil {
		t.Fatalf("New without config = %v, %v; want nil, nil", c, err)
	}

	if _, err := New("https://s3.example.com", "fsn1", "ak", "sk", "", ""); err == nil {
		t.Error("expected error without bucket")
	}
}

func TestFileURLAndExtractKey(t *testing.T) {
	tests := []struct {
		name      string
		publicURL string
		wantURL   string
	}{
		{"path style", "", "https://s3.example.com/brand/generated/a.png"},
		{"cdn", "https://cdn.example.com/", "https://cdn.example.com/generated/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New("https://s3.example.com/", "fsn1", "ak", "sk", "brand", tt.publicURL)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			url := c.FileURL("generated/a.png")
			if url != tt.wantURL {
				t.Errorf("FileURL = %q, want %q", url, tt.wantURL)
			}
			key, ok := c.ExtractKey(url)
			if !ok || key != "generated/a.png" {
				t.Errorf("ExtractKey(%q) = %q, %v", url, key, ok)
			}
			if _, ok := c.ExtractKey("https://elsewhere.example.com/x.png"); ok {
				t.Error("foreign URL should not match")
			}
		})
	}
}

func TestExtensionFor(t *testing.T) {
	tests := map[string]string{
		"image/jpeg":               ".jpg",
		"image/png":                ".png",
		"image/webp":               ".webp",
		"application/x-unknown-zz": "",
	}
	for ct, want := range tests {
		if got := extensionFor(ct); got != want {
			t.Errorf("extensionFor(%q) = %q, want %q", ct, got, want)
		}
	}
}

// TestUpload runs PutObject against a fake path-style S3 endpoint.
func TestUpload(t *testing.T) {
	var (
		mu      sync.Mutex
		method  string
		path    string
		ctype   string
		acl     string
		payload []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		method, path = r.Method, r.URL.Path
		ctype = r.Header.Get("Content-Type")
		acl = r.Header.Get("X-Amz-Acl")
		payload, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(srv.URL, "us-east-1", "ak", "sk", "brand", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	url, err := c.Upload(context.Background(), FolderBrandUploads, "image/png", []byte("pngdata"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if method != http.MethodPut {
		t.Errorf("method = %s, want PUT", method)
	}
	if !strings.HasPrefix(path, "/brand/brand_uploads/") || !strings.HasSuffix(path, ".png") {
		t.Errorf("path = %q", path)
	}
	if ctype != "image/png" || acl != "public-read" {
		t.Errorf("content-type=%q acl=%q", ctype, acl)
	}
	if !strings.Contains(string(payload), "pngdata") {
		t.Errorf("payload = %q", payload)
	}
	if url != srv.URL+path {
		t.Errorf("url = %q, want %q", url, srv.URL+path)
	}
}
