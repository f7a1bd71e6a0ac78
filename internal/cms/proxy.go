// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"io"
	"net/http"
)

// ProxyResult is a relayed CMS response: the status code and payload are
// passed back to the browser verbatim, success or not.
type ProxyResult struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// Proxy forwards a request to a CMS path and relays the response. The query
// string must already be in the CMS dialect (see QueryOptions.Encode). Only
// transport-level failures return an error; upstream HTTP errors come back
// as a ProxyResult for verbatim relay.
func (c *Client) Proxy(ctx context.Context, method, path, rawQuery string, body []byte, token string) (*ProxyResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	url := c.baseURL + "/" + path
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	resp, err := c.do(ctx, method, url, body, token)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	return &ProxyResult{
		StatusCode:  resp.StatusCode,
		Body:        respBody,
		ContentType: contentType,
	}, nil
}

// InvalidateCollection drops cached list responses after a mutation so the
// next render sees the write immediately instead of after the revalidation
// window.
func (c *Client) InvalidateCollection(ctx context.Context, collection string) {
	if c.cache == nil {
		return
	}
	// Entries are keyed per query string; clearing the whole cache is the
	// simplest correct invalidation and the cache is small.
	if err := c.cache.Clear(ctx); err != nil {
		c.logger.Warn("cache invalidation failed", "collection", collection, "error", err)
	}
}

// IsMutation reports whether the verb changes CMS state.
func IsMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}
