package contact

import (
	"net/http"

	"github.com/petgroom/petgroom-api/internal/pkg/errorhandler"
	"github.com/petgroom/petgroom-api/internal/pkg/response"
	"github.com/petgroom/petgroom-api/internal/pkg/validator"
)

// Handler handles contact HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates contact handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Submit handles POST /contacts (public)
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	c, err := h.svc.Submit(r.Context(), &req)
	if err != nil {
		errorhandler.Internal(r.Context(), w, "submit contact", err)
		return
	}

	response.Created(w, &ContactSubmittedResponse{
		ContactID: c.ID,
		Message:   "Obrigado pelo contato! Responderemos em breve.",
	})
}

// List handles GET /contacts (admin)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.List(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list contacts", err)
		return
	}

	items := make([]*ContactResponse, len(contacts))
	for i, c := range contacts {
		items[i] = ContactResponseFromEntity(c)
	}
	response.OK(w, items)
}
