package warmup

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codehub-dev/codehub-go/internal/cache"
	"github.com/codehub-dev/codehub-go/internal/cms"
)

func TestRefreshPopulatesCache(t *testing.T) {
	var languageCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/programming-languages") {
			languageCalls.Add(1)
			_, _ = w.Write([]byte(`{"docs":[{"id":"l1","Name":"Go","index":1}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"docs":[]}`))
	}))
	defer srv.Close()

	mem := cache.NewMemory(time.Minute, time.Minute)
	defer func() { _ = mem.Close() }()

	client := cms.New(srv.URL, mem, time.Minute, slog.New(slog.DiscardHandler))
	w := New(client, slog.New(slog.DiscardHandler))

	w.refresh()

	if languageCalls.Load() != 1 {
		t.Fatalf("language fetches = %d, want 1", languageCalls.Load())
	}

	// A subsequent page render hits the warmed cache, not the CMS.
	client.Languages(context.Background())
	if languageCalls.Load() != 1 {
		t.Errorf("language fetches after warm cache = %d, want still 1", languageCalls.Load())
	}
}

func TestStartStop(t *testing.T) {
	client := cms.New("", nil, time.Minute, slog.New(slog.DiscardHandler))
	w := New(client, slog.New(slog.DiscardHandler))

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
}
