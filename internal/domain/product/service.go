package product

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles catalog business logic
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates product service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns the catalog, optionally restricted to one category.
// An empty category means all products.
func (s *Service) List(ctx context.Context, category string) ([]*Product, error) {
	if category == "" {
		return s.repo.List(ctx)
	}
	c := Category(category)
	if !c.IsValid() {
		return nil, ErrInvalidCategory
	}
	return s.repo.ListByCategory(ctx, c)
}

// Create adds a product to the catalog
func (s *Service) Create(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	return s.create(ctx, req, s.now())
}

func (s *Service) create(ctx context.Context, req *CreateProductRequest, at time.Time) (*Product, error) {
	c := Category(req.Category)
	if !c.IsValid() {
		return nil, ErrInvalidCategory
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       math.Round(req.Price*100) / 100,
		Category:    c,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		CreatedAt:   at,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

// SeedDefaults fills an empty catalog with the default products
func (s *Service) SeedDefaults(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	base := s.now()
	for i := range defaultCatalog {
		if _, err := s.create(ctx, &defaultCatalog[i], base.Add(time.Duration(i)*time.Millisecond)); err != nil {
			return err
		}
	}

	log.Info().Int("count", len(defaultCatalog)).Msg("Product catalog seeded")
	return nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
