package contact

import (
	"time"

	"github.com/google/uuid"
)

// CreateContactRequest is the body of POST /contacts
type CreateContactRequest struct {
	Name       string `json:"name" validate:"required,notblank,max=120"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Message    string `json:"message" validate:"required,notblank,max=5000"`
	Newsletter bool   `json:"newsletter"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Message    string    `json:"message"`
	Newsletter bool      `json:"newsletter"`
	CreatedAt  time.Time `json:"created_at"`
}

// ContactSubmittedResponse is returned to the visitor
type ContactSubmittedResponse struct {
	ContactID uuid.UUID `json:"contact_id"`
	Message   string    `json:"message"`
}

// ContactResponseFromEntity converts entity to response
func ContactResponseFromEntity(c *Contact) *ContactResponse {
	resp := &ContactResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Message:    c.Message,
		Newsletter: c.Newsletter,
		CreatedAt:  c.CreatedAt,
	}
	if c.Phone.Valid {
		resp.Phone = &c.Phone.String
	}
	return resp
}
