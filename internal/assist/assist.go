// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package assist proxies the tutoring chat to the LLM provider. The API key
// stays server-side; the browser only ever sees the assistant's reply.
package assist

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrNotConfigured is returned when no provider API key is set.
var ErrNotConfigured = errors.New("assist: LLM provider not configured")

// systemPrompt frames the assistant as a programming tutor.
const systemPrompt = "You are a helpful programming tutor on CodeHub. " +
	"Explain concepts clearly, prefer small runnable examples, and never " +
	"just hand over full solutions to exercises."

// Message is one chat turn from the browser.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// Assistant wraps the LLM provider client.
type Assistant struct {
	client  openai.Client
	model   string
	enabled bool
}

// New creates an Assistant. An empty API key disables it.
func New(apiKey string, opts ...option.RequestOption) *Assistant {
	if apiKey == "" {
		return &Assistant{}
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Assistant{
		client:  openai.NewClient(opts...),
		model:   openai.ChatModelGPT4oMini,
		enabled: true,
	}
}

// Enabled reports whether a provider key is configured.
func (a *Assistant) Enabled() bool {
	return a.enabled
}

// Chat forwards the conversation to the provider and returns the
// assistant's reply.
func (a *Assistant) Chat(ctx context.Context, messages []Message) (string, error) {
	if !a.enabled {
		return "", ErrNotConfigured
	}

	params := openai.ChatCompletionNewParams{
		Model:    a.model,
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1),
	}
	params.Messages = append(params.Messages, openai.SystemMessage(systemPrompt))

	for _, m := range messages {
		switch m.Role {
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("assist: no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
