// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/codehub-dev/codehub-go/internal/auth"
	"github.com/codehub-dev/codehub-go/internal/model"
	"github.com/codehub-dev/codehub-go/internal/permission"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request-scoped data.
const (
	ContextKeyUser        ContextKey = "user"
	ContextKeyToken       ContextKey = "token"
	ContextKeyRequestPath ContextKey = "request_path"
)

// UserSource resolves a session token to the user it belongs to.
// The CMS client satisfies this.
type UserSource interface {
	Me(ctx context.Context, token string) (*model.User, error)
}

// RequireSession gates a route on the presence of the session cookie.
// Requests without one are redirected to the login page with the original
// path carried in the redirect query parameter. The token itself is not
// verified here; protected data still sits behind the CMS, which rejects
// stale tokens on its own.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.TokenFromRequest(r) == "" {
			target := "/login?redirect=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoadUser creates middleware that resolves the session cookie to a user via
// the CMS and stores both token and user in the request context. A missing
// cookie or a stale token is not an error; the request continues anonymous.
func LoadUser(users UserSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyToken, token)

			user, err := users.Me(ctx, token)
			if err != nil {
				slog.Debug("session token did not resolve to a user", "error", err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			if user != nil {
				ctx = context.WithValue(ctx, ContextKeyUser, user)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// GetToken retrieves the session token from the request context, or from the
// cookie when LoadUser did not run on this route.
func GetToken(r *http.Request) string {
	if token, ok := r.Context().Value(ContextKeyToken).(string); ok {
		return token
	}
	return auth.TokenFromRequest(r)
}

// RequireCapability creates middleware that requires the loaded user to hold
// a capability. Must run after LoadUser. Anonymous requests get 401,
// authenticated ones without the capability get 403.
func RequireCapability(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.IsActive || !permission.HasPermission(user.Role, capability) {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.Role,
					"capability", capability,
				)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestPath creates middleware that stores the request path in the context.
// The logging handler uses it to include the URL in warning and error logs.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}
