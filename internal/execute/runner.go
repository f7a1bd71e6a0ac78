// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package execute

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Timeout for execution requests; compile-and-run can be slow.
const runTimeout = 30 * time.Second

// ErrNotConfigured is returned when the execution API credentials are
// missing from the environment.
var ErrNotConfigured = errors.New("execute: compiler API not configured")

// SourceFile is one file sent to the compiler service.
type SourceFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Request is a playground run: a language label, optional stdin, and the
// source files.
type Request struct {
	Language string       `json:"language"`
	Stdin    string       `json:"stdin"`
	Files    []SourceFile `json:"files"`
}

// Runner forwards run requests to the external compiler API. The two
// credential headers stay server-side; the browser never sees them.
type Runner struct {
	url    string
	apiKey string
	host   string
	http   *http.Client
}

// NewRunner creates a Runner. url, apiKey, and host come from environment
// configuration; any of them empty disables the runner.
func NewRunner(url, apiKey, host string) *Runner {
	return &Runner{
		url:    url,
		apiKey: apiKey,
		host:   host,
		http:   &http.Client{Timeout: runTimeout},
	}
}

// Enabled reports whether the compiler API is configured.
func (r *Runner) Enabled() bool {
	return r.url != "" && r.apiKey != "" && r.host != ""
}

// Run forwards the request to the compiler service and returns the raw
// result for verbatim relay. The language label is mapped to the service's
// identifier and each file is renamed to carry the matching extension.
func (r *Runner) Run(ctx context.Context, req Request) (json.RawMessage, error) {
	if !r.Enabled() {
		return nil, ErrNotConfigured
	}

	langID := LanguageID(req.Language)
	ext := FileExtension(langID)

	files := make([]SourceFile, len(req.Files))
	for i, f := range req.Files {
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("main.%s", ext)
		}
		files[i] = SourceFile{Name: name, Content: f.Content}
	}

	payload, err := json.Marshal(map[string]any{
		"language": langID,
		"stdin":    req.Stdin,
		"files":    files,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-RapidAPI-Key", r.apiKey)
	httpReq.Header.Set("X-RapidAPI-Host", r.host)

	resp, err := r.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execution request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading execution response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("execution service status %d", resp.StatusCode)
	}

	return body, nil
}
