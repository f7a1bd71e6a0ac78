// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/codehub-dev/codehub-go/internal/cms"
	"github.com/codehub-dev/codehub-go/internal/middleware"
)

// ProxyHandler relays /api resource requests to the CMS. It translates the
// recognized query parameters into the CMS dialect, passes JSON bodies
// through, and relays upstream responses verbatim, errors included.
type ProxyHandler struct {
	cms      *cms.Client
	validate *validator.Validate
}

// NewProxyHandler creates a new proxy handler.
func NewProxyHandler(client *cms.Client) *ProxyHandler {
	return &ProxyHandler{
		cms:      client,
		validate: validator.New(),
	}
}

// Forward returns a handler that relays the request to one CMS collection.
// The route resource name and the CMS collection name may differ
// ("languages" vs "programming-languages").
func (h *ProxyHandler) Forward(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := collection
		if id := chi.URLParam(r, "id"); id != "" {
			path += "/" + id
		}
		h.relay(w, r, path, collection)
	}
}

// relay performs the upstream call and writes the relayed response.
func (h *ProxyHandler) relay(w http.ResponseWriter, r *http.Request, path, collection string) {
	if !h.cms.Configured() {
		writeJSONError(w, http.StatusInternalServerError, "CMS not configured")
		return
	}

	var body []byte
	if r.Body != nil && cms.IsMutation(r.Method) {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	rawQuery := ""
	if r.Method == http.MethodGet {
		rawQuery = cms.ParseQuery(r.URL.Query()).Encode()
	}

	result, err := h.cms.Proxy(r.Context(), r.Method, path, rawQuery, body, middleware.GetToken(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "cms proxy failed", "path", path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Upstream request failed")
		return
	}

	if cms.IsMutation(r.Method) && result.StatusCode >= 200 && result.StatusCode < 300 {
		h.cms.InvalidateCollection(r.Context(), collection)
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(result.StatusCode)
	_, _ = w.Write(result.Body)
}

type bulkRequest struct {
	IDs  []string        `json:"ids" validate:"required,min=1,dive,required"`
	Data json.RawMessage `json:"data"`
}

// BulkUpdate handles POST /api/exercises/bulk-update. Each ID is patched
// independently; there is no atomicity and no rollback.
func (h *ProxyHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, http.MethodPatch)
}

// BulkDelete handles POST /api/exercises/bulk-delete.
func (h *ProxyHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, http.MethodDelete)
}

func (h *ProxyHandler) bulk(w http.ResponseWriter, r *http.Request, method string) {
	if !h.cms.Configured() {
		writeJSONError(w, http.StatusInternalServerError, "CMS not configured")
		return
	}

	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "ids must be a non-empty list")
		return
	}
	if method == http.MethodPatch && isEmptyJSON(req.Data) {
		writeJSONError(w, http.StatusBadRequest, "data is required for bulk update")
		return
	}

	outcomes, summary := h.cms.BulkMutate(r.Context(), cms.CollectionExercises, method, req.IDs, req.Data, middleware.GetToken(r))

	writeJSONSuccess(w, map[string]any{
		"results": outcomes,
		"summary": summary,
	})
}

// isEmptyJSON reports whether a raw payload is absent or an empty object.
func isEmptyJSON(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	return len(m) == 0
}
