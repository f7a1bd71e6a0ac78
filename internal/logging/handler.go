// Package logging provides a slog handler that enriches warning and error
// records with request context, so upstream CMS failures can be traced back
// to the page that triggered them.
package logging

import (
	"context"
	"log/slog"

	"github.com/codehub-dev/codehub-go/internal/middleware"
)

// ContextHandler is a slog.Handler that wraps another handler and attaches
// the request path to records at WARN level and above.
type ContextHandler struct {
	inner slog.Handler
	level slog.Level
}

// NewContextHandler creates a ContextHandler that wraps the given handler.
func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{
		inner: inner,
		level: slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level {
		if path := middleware.GetRequestPath(ctx); path != "" {
			r = r.Clone()
			r.AddAttrs(slog.String("request_path", path))
		}
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		inner: h.inner.WithAttrs(attrs),
		level: h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{
		inner: h.inner.WithGroup(name),
		level: h.level,
	}
}
