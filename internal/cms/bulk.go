// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// bulkConcurrency bounds the per-ID fan-out so a large batch cannot open an
// unbounded number of upstream connections.
const bulkConcurrency = 8

// BulkOutcome is the result of one per-ID sub-request. Outcomes are
// independent: a failure on one ID does not roll back or block others.
type BulkOutcome struct {
	ID         string `json:"id"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"status"`
	Error      string `json:"error,omitempty"`
}

// BulkSummary aggregates a batch.
type BulkSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BulkMutate fans out one CMS request per ID concurrently and waits for all
// to settle. Results preserve input order. Best-effort semantics: no
// atomicity across the batch, nothing is retried or rolled back.
func (c *Client) BulkMutate(ctx context.Context, collection, method string, ids []string, data []byte, token string) ([]BulkOutcome, BulkSummary) {
	outcomes := make([]BulkOutcome, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			outcomes[i] = c.bulkOne(gctx, collection, method, id, data, token)
			return nil
		})
	}
	_ = g.Wait() // sub-tasks never return errors; failures live in outcomes

	summary := BulkSummary{Total: len(ids)}
	for _, o := range outcomes {
		if o.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}

	if summary.Successful > 0 {
		c.InvalidateCollection(ctx, collection)
	}

	return outcomes, summary
}

func (c *Client) bulkOne(ctx context.Context, collection, method, id string, data []byte, token string) BulkOutcome {
	var body []byte
	if method != http.MethodDelete {
		body = data
	}

	resp, err := c.do(ctx, method, c.baseURL+"/"+collection+"/"+id, body, token)
	if err != nil {
		return BulkOutcome{ID: id, Success: false, Error: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return BulkOutcome{
			ID:         id,
			Success:    false,
			StatusCode: resp.StatusCode,
			Error:      http.StatusText(resp.StatusCode),
		}
	}

	return BulkOutcome{ID: id, Success: true, StatusCode: resp.StatusCode}
}
