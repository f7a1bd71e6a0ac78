// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/codehub-dev/codehub-go/internal/auth"
	"github.com/codehub-dev/codehub-go/internal/cms"
	"github.com/codehub-dev/codehub-go/internal/middleware"
)

// AuthHandler proxies authentication calls to the CMS and manages the
// session cookie. There is no server-side session store; the CMS token in
// the cookie is the whole session.
type AuthHandler struct {
	cms      *cms.Client
	validate *validator.Validate
	isDev    bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(client *cms.Client, isDev bool) *AuthHandler {
	return &AuthHandler{
		cms:      client,
		validate: validator.New(),
		isDev:    isDev,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// relayAuthError maps a CMS auth failure onto our response. Upstream
// rejections keep their status code and message; everything else is a
// generic 500.
func relayAuthError(w http.ResponseWriter, err error, fallback string) {
	var upstream *cms.UpstreamError
	switch {
	case errors.As(err, &upstream):
		writeJSONError(w, upstream.StatusCode, upstream.Message)
	case errors.Is(err, cms.ErrNotConfigured):
		writeJSONError(w, http.StatusInternalServerError, "CMS not configured")
	default:
		slog.Error("auth upstream call failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, fallback)
	}
}

// Login handles POST /api/users/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.cms.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		relayAuthError(w, err, "Login failed")
		return
	}

	auth.SetSessionCookie(w, result.Token, h.isDev)
	writeJSONSuccess(w, map[string]any{"user": result.User})
}

// Signup handles POST /api/users. Account creation and session
// establishment are two separate CMS calls; when the chained login fails
// the account still exists, so the response stays 201 without a cookie.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "A valid email and a password of at least 8 characters are required")
		return
	}

	user, err := h.cms.CreateUser(r.Context(), cms.SignupParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		relayAuthError(w, err, "Signup failed")
		return
	}

	result, err := h.cms.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("signup succeeded but session establishment failed", "error", err)
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"user":    user,
			"message": "Account created, please log in",
		})
		return
	}

	auth.SetSessionCookie(w, result.Token, h.isDev)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    result.User,
	})
}

// Logout handles POST /api/users/logout. Purely local: the cookie is
// overwritten with an expired empty value.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.isDev)
	writeJSONSuccess(w, nil)
}

// Me handles GET /api/users/me. Without a cookie it answers 401 locally;
// with one, the CMS decides whether the token still vouches for a user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetToken(r)
	if token == "" {
		writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.cms.Me(r.Context(), token)
	if err != nil {
		relayAuthError(w, err, "Session check failed")
		return
	}
	if user == nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}

	writeJSONSuccess(w, map[string]any{"user": user})
}
