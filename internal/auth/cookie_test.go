package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSetSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok123", false)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Name != CookieName || c.Value != "tok123" {
		t.Errorf("cookie = %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be httpOnly")
	}
	if !c.Secure {
		t.Error("cookie must be Secure outside development")
	}
	if c.Path != "/" {
		t.Errorf("path = %q, want /", c.Path)
	}
	if c.MaxAge != 7*24*3600 {
		t.Errorf("max-age = %d, want 7 days", c.MaxAge)
	}
}

func TestSetSessionCookieDevelopment(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", true)

	if rec.Result().Cookies()[0].Secure {
		t.Error("Secure flag should be dropped in development")
	}
}

func TestClearSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec, false)

	c := rec.Result().Cookies()[0]
	if c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("expected immediately expired empty cookie, got %+v", c)
	}
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := TokenFromRequest(r); got != "" {
		t.Errorf("expected empty token without cookie, got %q", got)
	}

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "tok123"})
	if got := TokenFromRequest(r); got != "tok123" {
		t.Errorf("token = %q, want tok123", got)
	}
}
