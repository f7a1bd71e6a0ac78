// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/unrolled/secure"
)

// SecurityHeaders returns middleware that sets standard security headers.
// HSTS and the SSL redirect only apply outside development, where the app
// sits behind a TLS-terminating proxy.
func SecurityHeaders(isDev bool) func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; " +
			"style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; " +
			"connect-src 'self'; object-src 'none'; base-uri 'self'; form-action 'self'",
		STSSeconds:           31536000,
		STSIncludeSubdomains: true,
		SSLRedirect:          !isDev,
		SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:        isDev,
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := secureMiddleware.Process(w, r); err != nil {
				slog.Warn("secure headers blocked request", "error", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
