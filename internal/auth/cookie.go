// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth manages the session cookie wrapping the CMS bearer token.
// The cookie is the only persisted state in this service: there is no
// server-side session store, and the CMS alone decides token validity.
package auth

import (
	"net/http"
	"time"
)

// CookieName is the session cookie holding the opaque CMS token.
const CookieName = "payload-token"

// CookieMaxAge is the session lifetime set on login and signup.
const CookieMaxAge = 7 * 24 * time.Hour

// SetSessionCookie stores the CMS token in an httpOnly cookie.
// The Secure flag is dropped only in development so local HTTP works.
func SetSessionCookie(w http.ResponseWriter, token string, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   !isDev,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie overwrites the session cookie with an immediately
// expired empty value.
func ClearSessionCookie(w http.ResponseWriter, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   !isDev,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest reads the session token, or "" when no session exists.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
