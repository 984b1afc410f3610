package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/petgroom/petgroom-api/internal/pkg/jwt"
	"github.com/petgroom/petgroom-api/internal/pkg/password"
)

// Service handles admin sessions
type Service struct {
	repo    Repository
	jwtSvc  *jwt.Service
	revoked RevocationStore
	hash    func(string) (string, error)
}

// NewService creates admin service
func NewService(repo Repository, jwtSvc *jwt.Service, revoked RevocationStore) *Service {
	return &Service{
		repo:    repo,
		jwtSvc:  jwtSvc,
		revoked: revoked,
		hash:    password.Hash,
	}
}

// Session is an issued admin token
type Session struct {
	Token     string
	ExpiresAt time.Time
	Admin     *AdminUser
}

// EnsureDefaultAdmin creates the configured admin when no account with that
// username exists yet. An existing account keeps its password.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, pwd string) error {
	username = strings.TrimSpace(username)
	if username == "" || pwd == "" {
		log.Warn().Msg("Default admin credentials not configured, skipping")
		return nil
	}

	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := s.hash(pwd)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return err
	}

	log.Info().Str("username", username).Msg("Default admin created")
	return nil
}

// Login checks credentials and issues a session token
func (s *Service) Login(ctx context.Context, username, pwd string) (*Session, error) {
	admin, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if admin == nil || !password.Verify(pwd, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, _, expiresAt, err := s.jwtSvc.Generate(admin.ID, admin.Username)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	log.Info().Str("admin_id", admin.ID.String()).Msg("Admin logged in")
	return &Session{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// ValidateSession verifies the token and that it was not logged out
func (s *Service) ValidateSession(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtSvc.Validate(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if revoked {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Logout closes the session of token. Invalid tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtSvc.Validate(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	log.Info().Str("admin_id", claims.AdminID.String()).Msg("Admin logged out")
	return nil
}

// Status reports the admin behind adminID; uuid.Nil means anonymous
func (s *Service) Status(ctx context.Context, adminID uuid.UUID) *StatusResponse {
	if adminID == uuid.Nil {
		return &StatusResponse{}
	}

	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		log.Warn().Err(err).Str("admin_id", adminID.String()).Msg("Admin status lookup failed")
		return &StatusResponse{}
	}
	if admin == nil {
		return &StatusResponse{}
	}
	return &StatusResponse{IsAuthenticated: true, User: AdminResponseFromEntity(admin)}
}

// SessionTTL returns the lifetime of issued tokens
func (s *Service) SessionTTL() time.Duration {
	return s.jwtSvc.TTL()
}
