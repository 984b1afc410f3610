package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns gallery routes. Listing is public, changes are admin only.
func (h *Handler) Routes(requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Post("/", h.Create)
		r.Post("/upload", h.Upload)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
