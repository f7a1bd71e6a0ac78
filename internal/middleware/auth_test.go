package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codehub-dev/codehub-go/internal/auth"
	"github.com/codehub-dev/codehub-go/internal/model"
	"github.com/codehub-dev/codehub-go/internal/permission"
)

type stubUserSource struct {
	user  *model.User
	err   error
	calls int
}

func (s *stubUserSource) Me(_ context.Context, _ string) (*model.User, error) {
	s.calls++
	return s.user, s.err
}

func withSessionCookie(r *http.Request, token string) *http.Request {
	r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	return r
}

func TestRequireSessionRedirectsWithoutCookie(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("next handler should not run without a session cookie")
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/admin/exercises", nil)
	RequireSession(next).ServeHTTP(rec, r)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?redirect=%2Fadmin%2Fexercises" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequireSessionPassesWithCookie(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/admin", nil), "tok")
	RequireSession(next).ServeHTTP(rec, r)

	if !called {
		t.Error("next handler should run with a session cookie")
	}
}

func TestLoadUserSkipsResolutionWithoutCookie(t *testing.T) {
	src := &stubUserSource{}
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		if GetUser(r) != nil {
			t.Error("expected no user in context")
		}
	})

	rec := httptest.NewRecorder()
	LoadUser(src)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if src.calls != 0 {
		t.Errorf("Me called %d times without a cookie, want 0", src.calls)
	}
}

func TestLoadUserPutsUserInContext(t *testing.T) {
	src := &stubUserSource{user: &model.User{ID: "u1", Role: model.RoleEditor, IsActive: true}}
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil || user.ID != "u1" {
			t.Errorf("user in context = %+v", user)
		}
		if GetToken(r) != "tok" {
			t.Errorf("token = %q, want tok", GetToken(r))
		}
	})

	rec := httptest.NewRecorder()
	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/", nil), "tok")
	LoadUser(src)(next).ServeHTTP(rec, r)

	if src.calls != 1 {
		t.Errorf("Me called %d times, want 1", src.calls)
	}
}

func TestLoadUserContinuesAnonymousOnStaleToken(t *testing.T) {
	src := &stubUserSource{err: errors.New("token expired")}
	called := false
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		called = true
		if GetUser(r) != nil {
			t.Error("stale token must not yield a user")
		}
	})

	rec := httptest.NewRecorder()
	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/", nil), "stale")
	LoadUser(src)(next).ServeHTTP(rec, r)

	if !called {
		t.Error("request should continue without a user")
	}
}

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name       string
		user       *model.User
		wantStatus int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"plain user", &model.User{Role: model.RoleUser, IsActive: true}, http.StatusForbidden},
		{"inactive admin", &model.User{Role: model.RoleAdmin, IsActive: false}, http.StatusForbidden},
		{"editor", &model.User{Role: model.RoleEditor, IsActive: true}, http.StatusOK},
		{"admin", &model.User{Role: model.RoleAdmin, IsActive: true}, http.StatusOK},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireCapability(permission.CanAccessAdmin)(next)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.user != nil {
				ctx := context.WithValue(r.Context(), ContextKeyUser, tt.user)
				r = r.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequestPath(t *testing.T) {
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		if got := GetRequestPath(r.Context()); got != "/tutorials/go" {
			t.Errorf("request path = %q", got)
		}
	})

	rec := httptest.NewRecorder()
	RequestPath(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tutorials/go", nil))

	if GetRequestPath(context.Background()) != "" {
		t.Error("empty context should yield empty path")
	}
}
