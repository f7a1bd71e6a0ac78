// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/codehub-dev/codehub-go/internal/assist"
)

// ChatHandler relays the tutoring chat to the LLM provider.
type ChatHandler struct {
	assistant *assist.Assistant
	validate  *validator.Validate
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(assistant *assist.Assistant) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		validate:  validator.New(),
	}
}

type chatRequest struct {
	Messages []assist.Message `json:"messages" validate:"required,min=1,dive"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.assistant.Enabled() {
		writeJSONError(w, http.StatusServiceUnavailable, "Chat is not available")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "messages must be a non-empty list of {role, content}")
		return
	}

	reply, err := h.assistant.Chat(r.Context(), req.Messages)
	if err != nil {
		slog.ErrorContext(r.Context(), "chat completion failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Chat request failed")
		return
	}

	writeJSONSuccess(w, map[string]any{"reply": reply})
}
