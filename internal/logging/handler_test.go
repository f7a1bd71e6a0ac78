package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/codehub-dev/codehub-go/internal/middleware"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewContextHandler(inner)), &buf
}

func TestHandlerAddsRequestPathToWarnings(t *testing.T) {
	logger, buf := newTestLogger()
	ctx := context.WithValue(context.Background(), middleware.ContextKeyRequestPath, "/tutorials/go")

	logger.WarnContext(ctx, "upstream fetch failed")

	out := buf.String()
	if !strings.Contains(out, "request_path=/tutorials/go") {
		t.Errorf("warning missing request path: %s", out)
	}
}

func TestHandlerSkipsRequestPathBelowWarn(t *testing.T) {
	logger, buf := newTestLogger()
	ctx := context.WithValue(context.Background(), middleware.ContextKeyRequestPath, "/tutorials/go")

	logger.InfoContext(ctx, "cache refreshed")

	if strings.Contains(buf.String(), "request_path") {
		t.Errorf("info record should not carry request path: %s", buf.String())
	}
}

func TestHandlerWithoutContextPath(t *testing.T) {
	logger, buf := newTestLogger()

	logger.Error("standalone failure")

	out := buf.String()
	if !strings.Contains(out, "standalone failure") {
		t.Errorf("record not forwarded: %s", out)
	}
	if strings.Contains(out, "request_path") {
		t.Errorf("no path in context, none should be logged: %s", out)
	}
}

func TestHandlerWithAttrsPreservesEnrichment(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewContextHandler(inner)).With("component", "cms")

	ctx := context.WithValue(context.Background(), middleware.ContextKeyRequestPath, "/health")
	logger.WarnContext(ctx, "slow response")

	out := buf.String()
	if !strings.Contains(out, "component=cms") || !strings.Contains(out, "request_path=/health") {
		t.Errorf("derived logger lost attributes or enrichment: %s", out)
	}
}
