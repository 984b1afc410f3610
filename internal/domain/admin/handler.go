package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/petgroom/petgroom-api/internal/middleware"
	"github.com/petgroom/petgroom-api/internal/pkg/errorhandler"
	"github.com/petgroom/petgroom-api/internal/pkg/response"
	"github.com/petgroom/petgroom-api/internal/pkg/validator"
)

// Handler handles admin HTTP requests
type Handler struct {
	service       *Service
	secureCookies bool
}

// NewHandler creates admin handler. secureCookies marks the session cookie
// Secure and should be set behind HTTPS.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{service: service, secureCookies: secureCookies}
}

// Login handles POST /admin/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	session, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid username or password")
		default:
			errorhandler.Internal(r.Context(), w, "admin login", err)
		}
		return
	}

	http.SetCookie(w, h.cookie(session.Token, session.ExpiresAt))
	response.OK(w, &LoginResponse{
		AccessToken: session.Token,
		ExpiresAt:   session.ExpiresAt,
		User:        AdminResponseFromEntity(session.Admin),
	})
}

// Logout handles POST /admin/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), middleware.ExtractToken(r)); err != nil {
		errorhandler.Internal(r.Context(), w, "admin logout", err)
		return
	}

	http.SetCookie(w, h.cookie("", time.Unix(0, 0)))
	response.OK(w, &MessageResponse{Message: "Logged out"})
}

// Status handles GET /admin/status. It never fails: anonymous callers get
// isAuthenticated=false.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.service.Status(r.Context(), middleware.GetAdminID(r.Context())))
}

func (h *Handler) cookie(value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		c.MaxAge = -1
	}
	return c
}
