package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/petgroom/petgroom-api/internal/middleware"
)

// Routes returns admin session routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)
	r.With(middleware.OptionalAuth(h.service)).Get("/status", h.Status)
	r.With(middleware.Auth(h.service)).Post("/logout", h.Logout)

	return r
}

// RequireAdmin returns middleware that only lets admin sessions through
func (h *Handler) RequireAdmin() func(next http.Handler) http.Handler {
	return middleware.Auth(h.service)
}
