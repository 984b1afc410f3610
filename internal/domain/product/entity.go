package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/petgroom/petgroom-api/internal/pkg/validator"
)

// Category groups products on the storefront
type Category string

const (
	CategoryToys    Category = "brinquedos"
	CategoryHygiene Category = "higiene"
)

// Categories lists every category in display order
var Categories = []Category{CategoryToys, CategoryHygiene}

func init() {
	validator.RegisterEnum("product_category", string(CategoryToys), string(CategoryHygiene))
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is an item shown in the storefront catalog
type Product struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	Category    Category  `db:"category"`
	ImageURL    string    `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
}
