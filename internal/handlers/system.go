// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"
)

// Version is reported by the API index.
const Version = "1.0.0"

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Index describes the API.
func Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "AI Design Platform API",
		"version": Version,
		"endpoints": map[string]string{
			"agents":    "/api/agents",
			"brand":     "/api/brand",
			"templates": "/api/templates",
			"posts":     "/api/posts",
			"designs":   "/api/designs",
		},
	})
}
