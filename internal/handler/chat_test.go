package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3/option"

	"github.com/codehub-dev/codehub-go/internal/assist"
)

func TestChatDisabledWithoutKey(t *testing.T) {
	h := NewChatHandler(assist.New(""))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	h.Chat(rec, r)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestChatValidation(t *testing.T) {
	h := NewChatHandler(assist.New("key"))

	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"empty messages", `{"messages":[]}`},
		{"bad role", `{"messages":[{"role":"system","content":"x"}]}`},
		{"missing content", `{"messages":[{"role":"user"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Chat(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body)))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestChatRelaysReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Use fmt.Println."}}]}`))
	}))
	defer srv.Close()

	h := NewChatHandler(assist.New("key", option.WithBaseURL(srv.URL)))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"messages":[{"role":"user","content":"How do I print?"}]}`))
	h.Chat(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Use fmt.Println.") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
