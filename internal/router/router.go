// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// brandstudio API. Health and the API index are public; everything under
// /api that touches user data runs behind the Identity middleware.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brandstudio/internal/handlers"
	"brandstudio/internal/middleware"
)

// Handlers groups the handler sets the router mounts.
type Handlers struct {
	Agents    *handlers.Agents
	Brand     *handlers.Brand
	Templates *handlers.Templates
	Posts     *handlers.Posts
	Designs   *handlers.Designs
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. frontendURL is the only allowed CORS origin.
func New(frontendURL string, users middleware.UserResolver, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(frontendURL))

	r.NotFound(jsonStatus(http.StatusNotFound, "Not found"))
	r.MethodNotAllowed(jsonStatus(http.StatusMethodNotAllowed, "Method not allowed"))

	r.Get("/health", handlers.Health)
	r.Get("/api", handlers.Index)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(users))

		r.Post("/api/agents/design", h.Agents.Design)
		r.Get("/api/agents/logs", h.Agents.Logs)

		r.Route("/api/brand", func(r chi.Router) {
			r.Post("/", h.Brand.Create)
			r.Post("/upload", h.Brand.Upload)
			r.Post("/analyze", h.Brand.Analyze)
		})

		r.Route("/api/templates", func(r chi.Router) {
			r.Get("/", h.Templates.List)
			r.Get("/{id}", h.Templates.Get)
		})

		r.Route("/api/posts", func(r chi.Router) {
			r.Get("/", h.Posts.List)
			r.Post("/", h.Posts.Create)
			r.Get("/{id}", h.Posts.Get)
			r.Delete("/{id}", h.Posts.Delete)
			r.Get("/{id}/export", h.Posts.Export)
			r.Get("/{id}/qr", h.Posts.QR)
		})

		r.Post("/api/designs/export", h.Designs.Export)
	})

	return r
}

// jsonStatus answers every request with status and {"error": msg}.
func jsonStatus(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": msg})
	}
}
