package contact

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles contact business logic
type Service struct {
	repo Repository
}

// NewService creates contact service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit stores a contact form message
func (s *Service) Submit(ctx context.Context, req *CreateContactRequest) (*Contact, error) {
	c := &Contact{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Message:    strings.TrimSpace(req.Message),
		Newsletter: req.Newsletter,
		CreatedAt:  time.Now(),
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		c.Phone = sql.NullString{String: phone, Valid: true}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Info().
		Str("contact_id", c.ID.String()).
		Bool("newsletter", c.Newsletter).
		Msg("Contact message received")

	return c, nil
}

// List returns every contact, newest first
func (s *Service) List(ctx context.Context) ([]*Contact, error) {
	return s.repo.List(ctx)
}
