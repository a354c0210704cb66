// AngelaMos | 2026
// middleware_test.go

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beanvoyage/storefront/internal/core"
)

type stubVerifier struct {
	identity *Identity
	err      error
}

func (s stubVerifier) Verify(context.Context, string) (*Identity, error) {
	return s.identity, s.err
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetUserID(r.Context())))
	})
}

func TestAuthenticator(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   stubVerifier
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed scheme",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer abc",
			verifier:   stubVerifier{err: fmt.Errorf("verify: %w", core.ErrTokenExpired)},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "TOKEN_EXPIRED",
		},
		{
			name:       "revoked token",
			header:     "Bearer abc",
			verifier:   stubVerifier{err: core.ErrTokenRevoked},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "TOKEN_REVOKED",
		},
		{
			name:       "valid token",
			header:     "bearer abc",
			verifier:   stubVerifier{identity: &Identity{UserID: "user-7", Role: RoleCustomer}},
			wantStatus: http.StatusOK,
			wantBody:   "user-7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Authenticator(tt.verifier)(echoUser()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestOptionalAuthLetsGuestsThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/recommendations/preview", nil)
	req.Header.Set("Authorization", "Bearer broken")
	rec := httptest.NewRecorder()

	OptionalAuth(stubVerifier{err: errors.New("bad")})(echoUser()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		identity   *Identity
		wantStatus int
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
		{name: "customer", identity: &Identity{UserID: "u", Role: RoleCustomer}, wantStatus: http.StatusForbidden},
		{name: "admin", identity: &Identity{UserID: "a", Role: RoleAdmin}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/overview", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()

			RequireAdmin(echoUser()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "/v1/checkout", normalizeEndpoint("/v1/checkout"))
	assert.Equal(t, "/v1/shipments/{id}/review", normalizeEndpoint("/v1/shipments/42/review"))
	assert.Equal(
		t,
		"/v1/admin/shipments/{id}/status",
		normalizeEndpoint("/v1/admin/shipments/6f1c2a8e-0b9d-4c43-9a57-3c1b2d7e8f90/status"),
	)
}

func TestKeyByUserFallsBackToIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout", nil)
	req.RemoteAddr = "10.0.0.9:5555"
	assert.Equal(t, "ratelimit:ip:10.0.0.9", KeyByUser(req))

	req = req.WithContext(WithIdentity(req.Context(), &Identity{UserID: "u1"}))
	assert.Equal(t, "ratelimit:user:u1:endpoint:/v1/checkout", KeyByUserAndEndpoint(req))
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(true)(echoUser()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}
