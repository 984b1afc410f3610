package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/petgroom/petgroom-api/internal/pkg/jwt"
	"github.com/petgroom/petgroom-api/internal/pkg/response"
)

type contextKey string

const (
	AdminIDKey  contextKey = "admin_id"
	UsernameKey contextKey = "admin_username"
	SessionKey  contextKey = "admin_session_id"
)

// SessionCookie carries the admin token for browser clients
const SessionCookie = "admin_session"

// SessionValidator checks a session token and reports whether it is still active
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*jwt.Claims, error)
}

// Auth returns middleware that requires a valid admin session
func Auth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				response.Unauthorized(w, "Authentication required")
				return
			}

			claims, err := sessions.ValidateSession(r.Context(), token)
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Session expired")
				} else {
					response.Unauthorized(w, "Invalid session")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches the admin identity when a valid session is present
// and lets the request through either way.
func OptionalAuth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := ExtractToken(r); token != "" {
				if claims, err := sessions.ValidateSession(r.Context(), token); err == nil {
					r = r.WithContext(withClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ExtractToken reads the bearer header first, then the session cookie
func ExtractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, AdminIDKey, claims.AdminID)
	ctx = context.WithValue(ctx, UsernameKey, claims.Username)
	return context.WithValue(ctx, SessionKey, claims.ID)
}

// GetAdminID extracts admin ID from context
func GetAdminID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(AdminIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetUsername extracts admin username from context
func GetUsername(ctx context.Context) string {
	if name, ok := ctx.Value(UsernameKey).(string); ok {
		return name
	}
	return ""
}

// GetSessionID extracts the session token id (jti) from context
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(SessionKey).(string); ok {
		return id
	}
	return ""
}
