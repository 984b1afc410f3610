package gallery

import (
	"time"

	"github.com/google/uuid"
)

// CreateImageRequest is the body of POST /gallery
type CreateImageRequest struct {
	URL         string `json:"url" validate:"required,notblank,max=2048"`
	Description string `json:"description" validate:"required,notblank,max=500"`
}

// ImageResponse represents a gallery image in API responses
type ImageResponse struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImageResponseFromEntity converts entity to response
func ImageResponseFromEntity(img *Image) *ImageResponse {
	return &ImageResponse{
		ID:           img.ID,
		URL:          img.URL,
		ThumbnailURL: img.ThumbnailURL.String,
		Description:  img.Description,
		CreatedAt:    img.CreatedAt,
	}
}
