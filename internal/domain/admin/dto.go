package admin

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest is the body of POST /admin/login
type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

// AdminResponse is the public view of an admin
type AdminResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
	User        *AdminResponse `json:"user"`
}

// StatusResponse reports whether the caller holds an admin session
type StatusResponse struct {
	IsAuthenticated bool           `json:"isAuthenticated"`
	User            *AdminResponse `json:"user"`
}

// MessageResponse carries a plain confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// AdminResponseFromEntity converts entity to response
func AdminResponseFromEntity(a *AdminUser) *AdminResponse {
	return &AdminResponse{ID: a.ID, Username: a.Username}
}
