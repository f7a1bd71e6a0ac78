// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/codehub-dev/codehub-go/internal/model"
)

// AuthResult is the CMS response to a successful login.
type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// cmsErrors is the CMS error payload shape.
type cmsErrors struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// firstErrorMessage extracts the CMS's first error message from a response
// body, falling back to the given default.
func firstErrorMessage(body []byte, fallback string) string {
	var e cmsErrors
	if err := json.Unmarshal(body, &e); err == nil && len(e.Errors) > 0 && e.Errors[0].Message != "" {
		return e.Errors[0].Message
	}
	return fallback
}

// Login posts credentials to the CMS login endpoint. On rejection it returns
// an *UpstreamError carrying the CMS's status code and first error message.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/users/login", payload, "")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    firstErrorMessage(body, "Login failed"),
		}
	}

	var result AuthResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SignupParams carries the fields a new account is created with.
type SignupParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// CreateUser creates a user record at the CMS. New users always start with
// the lowest-privilege role; role escalation happens in the CMS admin, never
// through this proxy.
func (c *Client) CreateUser(ctx context.Context, params SignupParams) (*model.User, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	payload, _ := json.Marshal(map[string]string{
		"email":     params.Email,
		"password":  params.Password,
		"firstName": params.FirstName,
		"lastName":  params.LastName,
		"role":      model.RoleUser,
	})
	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/users", payload, "")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    firstErrorMessage(body, "Signup failed"),
		}
	}

	// The CMS wraps the created document: {"doc": {...}, "message": "..."}
	var created struct {
		Doc model.User `json:"doc"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, err
	}
	return &created.Doc, nil
}

// Me forwards a session token to the CMS current-user endpoint and returns
// the user it vouches for, or nil when the CMS reports no user. The CMS is
// the sole source of truth for token validity; nothing is verified locally.
func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/users/me", nil, token)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    firstErrorMessage(body, "Session check failed"),
		}
	}

	var result struct {
		User *model.User `json:"user"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return result.User, nil
}
