package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking routes. requireAdmin guards deletes; limitCreate
// throttles public submissions.
func (h *Handler) Routes(requireAdmin, limitCreate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.With(limitCreate).Post("/", h.Create)
	r.Get("/availability", h.Availability)
	r.Get("/calendar", h.Calendar)
	r.Get("/ws", h.Feed)

	r.With(requireAdmin).Delete("/{id}", h.Delete)

	return r
}

// AdminRoutes returns booking routes of the admin panel; the caller applies auth
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/export", h.Export)

	return r
}
