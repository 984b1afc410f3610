package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns product routes
func (h *Handler) Routes(requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.With(requireAdmin).Post("/", h.Create)
	r.With(requireAdmin).Delete("/{id}", h.Delete)

	return r
}
