package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/petgroom/petgroom-api/internal/pkg/jwt"
)

type jwtSessions struct {
	svc     *jwt.Service
	revoked map[string]bool
}

func (s *jwtSessions) ValidateSession(_ context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.svc.Validate(token)
	if err != nil {
		return nil, err
	}
	if s.revoked[claims.ID] {
		return nil, jwt.ErrInvalidToken
	}
	return claims, nil
}

func newSessions(t *testing.T) (*jwtSessions, string, string, uuid.UUID) {
	t.Helper()
	svc := jwt.NewService("secret", time.Hour)
	id := uuid.New()
	token, jti, _, err := svc.Generate(id, "admin")
	if err != nil {
		t.Fatalf("token gen failed: %v", err)
	}
	return &jwtSessions{svc: svc, revoked: map[string]bool{}}, token, jti, id
}

func TestAuthMiddlewareAllowsBearerToken(t *testing.T) {
	sessions, token, _, id := newSessions(t)

	var gotID uuid.UUID
	protected := Auth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetAdminID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotID != id {
		t.Fatalf("expected admin id %s in context, got %s", id, gotID)
	}
}

func TestAuthMiddlewareAllowsSessionCookie(t *testing.T) {
	sessions, token, _, _ := newSessions(t)

	protected := Auth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUsername(r.Context()) != "admin" {
			t.Errorf("expected username in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsMissingAndRevoked(t *testing.T) {
	sessions, token, jti, _ := newSessions(t)
	protected := Auth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	sessions.revoked[jti] = true
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", w.Code)
	}
}

func TestOptionalAuthPassesAnonymousRequests(t *testing.T) {
	sessions, _, _, _ := newSessions(t)
	handler := OptionalAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAdminID(r.Context()) != uuid.Nil {
			t.Errorf("expected anonymous context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
