package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bedolaga/remnawave-admin-bff/pkg/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDMiddleware_MintsWhenAbsent(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("no request id in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("response header = %q, context = %q, want equal", got, seen)
	}
}

func TestRequestIDMiddleware_EchoesInbound(t *testing.T) {
	handler := RequestIDMiddleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "corr-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "corr-123" {
		t.Errorf("request id = %q, want inbound corr-123 echoed", got)
	}
}

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewManager("test-secret", time.Hour)
	token, err := manager.CreateAccessToken("admin-1", []string{"admin"})
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}

	var principal *auth.AdminUser
	handler := AuthMiddleware(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = AdminFromContext(r.Context())
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if principal == nil || principal.ID != "admin-1" {
					t.Errorf("principal = %+v, want admin-1", principal)
				}
			} else if principal != nil {
				t.Errorf("principal leaked through a %d response", tt.wantStatus)
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issued := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := issued
	manager := auth.NewManagerWithClock("test-secret", time.Minute, func() time.Time { return clock })

	token, err := manager.CreateAccessToken("admin-1", nil)
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}
	clock = issued.Add(2 * time.Minute)

	handler := AuthMiddleware(manager)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for expired token", rec.Code)
	}
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware([]string{"https://admin.example.com"})(okHandler())

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://admin.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example.com" {
			t.Errorf("allow-origin = %q", got)
		}
	})

	t.Run("unknown origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("allow-origin = %q, want none", got)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://admin.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("preflight status = %d, want 204", rec.Code)
		}
	})
}
