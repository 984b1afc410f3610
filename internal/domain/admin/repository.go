package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines admin data access
type Repository interface {
	Create(ctx context.Context, admin *AdminUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*AdminUser, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates admin repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, admin *AdminUser) error {
	query := r.db.Rebind(`
		INSERT INTO admin_users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`)
	if _, err := r.db.ExecContext(ctx, query, admin.ID, admin.Username, admin.PasswordHash, admin.CreatedAt); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	return r.get(ctx, `SELECT * FROM admin_users WHERE id = ?`, id)
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*AdminUser, error) {
	return r.get(ctx, `SELECT * FROM admin_users WHERE LOWER(username) = LOWER(?)`, username)
}

func (r *repository) get(ctx context.Context, query string, arg interface{}) (*AdminUser, error) {
	var admin AdminUser
	if err := r.db.GetContext(ctx, &admin, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &admin, nil
}

// MemoryRepository keeps admins in process memory
type MemoryRepository struct {
	mu     sync.RWMutex
	admins map[uuid.UUID]*AdminUser
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{admins: make(map[uuid.UUID]*AdminUser)}
}

func (r *MemoryRepository) Create(_ context.Context, admin *AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *admin
	r.admins[admin.ID] = &c
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.admins[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetByUsername(_ context.Context, username string) (*AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.admins {
		if strings.EqualFold(a.Username, username) {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}
