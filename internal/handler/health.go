// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/codehub-dev/codehub-go/internal/cms"
)

// HealthHandler reports service liveness and CMS reachability.
type HealthHandler struct {
	cms       *cms.Client
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(client *cms.Client) *HealthHandler {
	return &HealthHandler{
		cms:       client,
		startTime: time.Now(),
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	checks := map[string]any{}

	latency, err := h.cms.Ping(r.Context())
	if err != nil {
		status = "degraded"
		checks["cms"] = map[string]any{"status": "unreachable"}
	} else {
		checks["cms"] = map[string]any{
			"status":  "ok",
			"latency": latency.Round(time.Millisecond).String(),
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status": status,
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
		"checks": checks,
	})
}
