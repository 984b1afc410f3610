package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns contact routes. Submissions are public and throttled; the
// list is admin only.
func (h *Handler) Routes(requireAdmin, limitSubmit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(limitSubmit).Post("/", h.Submit)
	r.With(requireAdmin).Get("/", h.List)

	return r
}
