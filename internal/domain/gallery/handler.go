package gallery

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/petgroom/petgroom-api/internal/pkg/errorhandler"
	"github.com/petgroom/petgroom-api/internal/pkg/response"
	"github.com/petgroom/petgroom-api/internal/pkg/storage"
	"github.com/petgroom/petgroom-api/internal/pkg/validator"
)

// Handler handles gallery HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates gallery handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /gallery
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.svc.List(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list gallery", err)
		return
	}

	items := make([]*ImageResponse, len(images))
	for i, img := range images {
		items[i] = ImageResponseFromEntity(img)
	}
	response.OK(w, items)
}

// Create handles POST /gallery with a JSON body pointing at a hosted image
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateImageRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	img, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		errorhandler.Internal(r.Context(), w, "create gallery image", err)
		return
	}
	response.Created(w, ImageResponseFromEntity(img))
}

// Upload handles POST /gallery/upload (multipart: file, description)
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(storage.MaxImageSize); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "File is required")
		return
	}
	defer file.Close()

	description := r.FormValue("description")
	if errs := validator.Validate(&struct {
		Description string `json:"description" validate:"required,notblank,max=500"`
	}{description}); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	img, err := h.svc.Upload(r.Context(), file, description)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			response.BadRequest(w, "File too large (max 10MB)")
		case errors.Is(err, storage.ErrInvalidMimeType):
			response.BadRequest(w, "Invalid file type. Allowed: JPEG, PNG, GIF")
		case errors.Is(err, storage.ErrEmptyFile):
			response.BadRequest(w, "File is empty")
		case errors.Is(err, ErrInvalidImage):
			response.BadRequest(w, "File is not a readable image")
		case errors.Is(err, ErrUploadsDisabled):
			errorhandler.HandleError(r.Context(), w, http.StatusServiceUnavailable, "UPLOADS_DISABLED", "Uploads are not configured", err)
		default:
			errorhandler.Internal(r.Context(), w, "upload gallery image", err)
		}
		return
	}
	response.Created(w, ImageResponseFromEntity(img))
}

// Delete handles DELETE /gallery/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "Image not found")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrImageNotFound) {
			response.NotFound(w, "Image not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "delete gallery image", err)
		return
	}
	response.OK(w, map[string]string{"message": "Imagem removida com sucesso"})
}
