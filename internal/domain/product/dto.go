package product

import (
	"time"

	"github.com/google/uuid"
)

// CreateProductRequest is the body of POST /products
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=200"`
	Description string  `json:"description" validate:"required,notblank,max=1000"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"required,product_category"`
	ImageURL    string  `json:"image_url" validate:"required,url,max=2048"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Category    Category  `json:"category"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductResponseFromEntity converts entity to response. Prices are rendered
// with two decimals, the way they are printed on the storefront.
func ProductResponseFromEntity(p *Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       formatPrice(p.Price),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}
