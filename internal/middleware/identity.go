// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"brandstudio/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// UserKey is the context key for the calling user.
const UserKey contextKey = "user"

// UserResolver identifies the caller of a request.
type UserResolver interface {
	Resolve(r *http.Request) (*models.User, error)
}

// UserFinder is the slice of the user store DemoUser needs.
type UserFinder interface {
	FindByEmail(email string) (*models.User, error)
	Ensure(email, password, name string, tier models.SubscriptionTier) (*models.User, error)
}

// DemoUser resolves every request to one fixed account, creating it on
// first use. It stands in for real authentication.
type DemoUser struct {
	Users    UserFinder
	Email    string
	Password string
}

// Resolve returns the demo account, creating it when missing.
func (d *DemoUser) Resolve(*http.Request) (*models.User, error) {
	u, err := d.Users.FindByEmail(d.Email)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}
	slog.Warn("demo user missing, recreating", "email", d.Email)
	return d.Users.Ensure(d.Email, d.Password, "Demo User", models.TierPro)
}

// Identity resolves the caller and stores it in the request context.
// Handlers read it with UserFromCtx. A resolver failure is a 500.
func Identity(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r)
			if err != nil || user == nil {
				slog.Error("failed to resolve caller", "error", err, "path", r.URL.Path)
				writeJSONError(w, http.StatusInternalServerError, "Failed to resolve user")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// UserFromCtx returns the caller, or nil outside the Identity middleware.
func UserFromCtx(ctx context.Context) *models.User {
	u, _ := ctx.Value(UserKey).(*models.User)
	return u
}

// WithUser returns a context carrying u. Identity uses it for every
// request; handler tests use it to skip the middleware.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}
