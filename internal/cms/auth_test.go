package cms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "ada@example.com" {
			t.Errorf("email = %q", creds["email"])
		}
		_, _ = w.Write([]byte(`{"token":"tok123","user":{"id":"u1","email":"ada@example.com","role":"user","isActive":true}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, time.Minute, testLogger())
	result, err := c.Login(context.Background(), "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token != "tok123" || result.User.ID != "u1" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestLoginRejectionRelaysStatusAndFirstMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"Incorrect email or password."},{"message":"second"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, time.Minute, testLogger())
	_, err := c.Login(context.Background(), "ada@example.com", "wrong")

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", upstream.StatusCode)
	}
	if upstream.Message != "Incorrect email or password." {
		t.Errorf("message = %q, want the CMS's first error message", upstream.Message)
	}
}

func TestCreateUserForcesUserRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["role"] != "user" {
			t.Errorf("role = %q, want user", payload["role"])
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"doc":{"id":"u2","email":"new@example.com","role":"user","isActive":true},"message":"created"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, time.Minute, testLogger())
	user, err := c.CreateUser(context.Background(), SignupParams{Email: "new@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID != "u2" {
		t.Errorf("user = %+v", user)
	}
}

func TestMeForwardsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"user":{"id":"u1","email":"ada@example.com","role":"editor","isActive":true}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, time.Minute, testLogger())
	user, err := c.Me(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user == nil || user.Role != "editor" {
		t.Errorf("user = %+v", user)
	}
}

func TestMeNullUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"user":null}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, time.Minute, testLogger())
	user, err := c.Me(context.Background(), "expired")
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
}

func TestAuthNotConfigured(t *testing.T) {
	c := New("", nil, time.Minute, testLogger())

	if _, err := c.Login(context.Background(), "a@b.c", "x"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Login err = %v, want ErrNotConfigured", err)
	}
	if _, err := c.Me(context.Background(), "tok"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Me err = %v, want ErrNotConfigured", err)
	}
}
