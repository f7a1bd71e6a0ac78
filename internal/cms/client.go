// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cms is the HTTP client for the headless CMS that owns all durable
// data. It covers three concerns: fetching collection documents for
// server-rendered pages (with a short revalidation cache), forwarding
// authentication calls, and relaying arbitrary proxy requests for the
// /api routes.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/codehub-dev/codehub-go/internal/cache"
	"github.com/codehub-dev/codehub-go/internal/model"
)

const httpTimeout = 15 * time.Second

// Collection names as exposed by the CMS.
const (
	CollectionTutorials       = "tutorials"
	CollectionLanguages       = "programming-languages"
	CollectionExercises       = "exercises"
	CollectionFormSubmissions = "form-submissions"
	CollectionForms           = "forms"
	CollectionUsers           = "users"
)

// ErrNotConfigured is returned when no CMS base URL is configured.
// Callers fail closed with a 500 before any network activity.
var ErrNotConfigured = errors.New("cms: base URL not configured")

// UpstreamError carries a non-2xx CMS response so handlers can relay the
// status code and message verbatim.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("cms: upstream status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the CMS. Fetches are cached for the revalidation window;
// auth and proxy calls always go upstream.
type Client struct {
	baseURL string
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	logger  *slog.Logger
}

// New creates a Client. The cache may be nil to disable the revalidation
// window (used by tests that assert call counts).
func New(baseURL string, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: httpTimeout},
		cache:   c,
		ttl:     ttl,
		logger:  logger,
	}
}

// Configured reports whether a CMS base URL is set.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// envelope is the CMS list response shape.
type envelope struct {
	Docs []json.RawMessage `json:"docs"`
}

// FetchCollection queries a collection and returns its docs. Single attempt,
// no retry; every failure (missing config, transport error, non-2xx status,
// malformed body) is logged and an empty list returned. Results are cached
// for the revalidation window.
func (c *Client) FetchCollection(ctx context.Context, collection string, opts QueryOptions) []json.RawMessage {
	if !c.Configured() {
		c.logger.Error("cms fetch skipped", "collection", collection, "error", ErrNotConfigured)
		return nil
	}

	query := opts.Encode()
	cacheKey := "cms:" + collection + "?" + query

	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
			var env envelope
			if err := json.Unmarshal(cached, &env); err == nil {
				return env.Docs
			}
			_ = c.cache.Delete(ctx, cacheKey)
		}
	}

	reqURL := c.baseURL + "/" + collection + "?" + query
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("cms fetch request", "collection", collection, "error", err)
		return nil
	}
	req.Header.Set("X-Request-Id", requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("cms fetch failed", "collection", collection, "error", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("cms fetch status", "collection", collection, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("cms fetch read", "collection", collection, "error", err)
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Error("cms fetch decode", "collection", collection, "error", err)
		return nil
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body, c.ttl); err != nil {
			c.logger.Warn("cms fetch cache write", "collection", collection, "error", err)
		}
	}

	return env.Docs
}

// decodeDocs unmarshals raw docs into typed records, skipping documents that
// do not validate against the record shape.
func decodeDocs[T any](logger *slog.Logger, collection string, docs []json.RawMessage) []T {
	out := make([]T, 0, len(docs))
	for _, raw := range docs {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			logger.Warn("cms document dropped", "collection", collection, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Languages fetches all programming languages ordered by their index field.
func (c *Client) Languages(ctx context.Context) []model.Language {
	docs := c.FetchCollection(ctx, CollectionLanguages, QueryOptions{Sort: "index"})
	return decodeDocs[model.Language](c.logger, CollectionLanguages, docs)
}

// Tutorials fetches the tutorials of one language ordered by index.
// An empty languageID fetches all tutorials.
func (c *Client) Tutorials(ctx context.Context, languageID string) []model.Tutorial {
	opts := QueryOptions{Sort: "index"}
	if languageID != "" {
		opts.Where = []Filter{{Field: "language", Op: OpEquals, Value: languageID}}
	}
	docs := c.FetchCollection(ctx, CollectionTutorials, opts)
	return decodeDocs[model.Tutorial](c.logger, CollectionTutorials, docs)
}

// Exercises fetches exercises matching the given options.
func (c *Client) Exercises(ctx context.Context, opts QueryOptions) []model.Exercise {
	docs := c.FetchCollection(ctx, CollectionExercises, opts)
	return decodeDocs[model.Exercise](c.logger, CollectionExercises, docs)
}

// Ping checks CMS reachability for the health endpoint and returns the
// round-trip latency. Any response counts as reachable; only transport
// failures are errors.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	if !c.Configured() {
		return 0, ErrNotConfigured
	}

	start := time.Now()
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/"+CollectionLanguages+"?limit=1", nil, "")
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()

	return time.Since(start), nil
}

// do issues a request with the shared client, attaching the request ID and
// optional bearer token.
func (c *Client) do(ctx context.Context, method, url string, body []byte, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", requestID(ctx))

	return c.http.Do(req)
}

// requestID reuses the chi request ID when the context carries one and
// otherwise mints a fresh UUID, so upstream CMS logs correlate with ours.
func requestID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
