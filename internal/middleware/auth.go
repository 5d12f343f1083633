// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"backoffice/internal/models"
	"backoffice/internal/store"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the acting user.
	IdentityKey contextKey = "identity"
)

// Capability names used by the router. Every resource uses the same four
// actions; the matrix in role_permissions decides who holds what.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// LoadIdentity resolves the acting user from the Authorization bearer
// token and stores it in the request context. This middleware does NOT
// enforce authentication; it just loads the identity if one resolves.
func LoadIdentity(users *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByToken(token)
			if err != nil {
				slog.Error("identity lookup failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if user != nil {
				ctx := context.WithValue(r.Context(), IdentityKey, user)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireCapability returns 401 for anonymous requests and 403 when the
// acting user's role does not hold the (resource, action) capability.
// Must be applied after LoadIdentity.
func RequireCapability(perms *store.PermissionStore, resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := IdentityFromCtx(r.Context())
			if user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			allowed, err := perms.Allows(user.Role, resource, action)
			if err != nil {
				slog.Error("permission check failed", "error", err, "resource", resource, "action", action)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromCtx extracts the acting user from the request context.
// Returns nil if no identity is loaded.
func IdentityFromCtx(ctx context.Context) *models.User {
	user, _ := ctx.Value(IdentityKey).(*models.User)
	return user
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
