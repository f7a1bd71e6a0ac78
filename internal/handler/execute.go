// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/codehub-dev/codehub-go/internal/execute"
)

// ExecuteHandler relays playground runs to the external compiler API.
type ExecuteHandler struct {
	runner *execute.Runner
}

// NewExecuteHandler creates a new execute handler.
func NewExecuteHandler(runner *execute.Runner) *ExecuteHandler {
	return &ExecuteHandler{runner: runner}
}

// Run handles POST /api/execute.
func (h *ExecuteHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req execute.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Language == "" || len(req.Files) == 0 {
		writeJSONError(w, http.StatusBadRequest, "language and files are required")
		return
	}

	result, err := h.runner.Run(r.Context(), req)
	if err != nil {
		if errors.Is(err, execute.ErrNotConfigured) {
			writeJSONError(w, http.StatusInternalServerError, "Code execution not configured")
			return
		}
		slog.ErrorContext(r.Context(), "code execution failed", "language", req.Language, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Code execution failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(result)
}
