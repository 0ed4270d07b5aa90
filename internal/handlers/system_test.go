// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "healthy" {
		t.Errorf("status = %q", body.Status)
	}
	if _, err := time.Parse(time.RFC3339, body.Timestamp); err != nil {
		t.Errorf("timestamp %q: %v", body.Timestamp, err)
	}
}

func TestIndex(t *testing.T) {
	rr := httptest.NewRecorder()
	Index(rr, httptest.NewRequest(http.MethodGet, "/api", nil))

	var body struct {
		Version   string            `json:"version"`
		Endpoints map[string]string `json:"endpoints"`
	}
	json.Unmarshal(rr.Body.Bytes(), &body)
	if body.Version != Version || body.Endpoints["posts"] != "/api/posts" {
		t.Errorf("index = %+v", body)
	}
}
