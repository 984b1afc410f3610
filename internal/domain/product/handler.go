package product

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/petgroom/petgroom-api/internal/pkg/errorhandler"
	"github.com/petgroom/petgroom-api/internal/pkg/response"
	"github.com/petgroom/petgroom-api/internal/pkg/validator"
)

// Handler handles product HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates product handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /products?category=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			errorhandler.Validation(r.Context(), w, map[string]string{
				"category": "Must be one of: brinquedos, higiene",
			})
			return
		}
		errorhandler.Internal(r.Context(), w, "list products", err)
		return
	}

	items := make([]*ProductResponse, len(products))
	for i, p := range products {
		items[i] = ProductResponseFromEntity(p)
	}
	response.OK(w, items)
}

// Create handles POST /products
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	p, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		errorhandler.Internal(r.Context(), w, "create product", err)
		return
	}
	response.Created(w, ProductResponseFromEntity(p))
}

// Delete handles DELETE /products/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "delete product", err)
		return
	}
	response.OK(w, map[string]string{"message": "Produto removido com sucesso"})
}
