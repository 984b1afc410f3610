package contact

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines contact data access
type Repository interface {
	Create(ctx context.Context, c *Contact) error
	List(ctx context.Context) ([]*Contact, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates contact repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Contact) error {
	query := r.db.Rebind(`
		INSERT INTO contacts (id, name, email, phone, message, newsletter, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Message, c.Newsletter, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]*Contact, error) {
	contacts := []*Contact{}
	query := `SELECT * FROM contacts ORDER BY created_at DESC, id`
	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// MemoryRepository keeps contacts in process memory
type MemoryRepository struct {
	mu       sync.RWMutex
	contacts map[uuid.UUID]*Contact
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{contacts: make(map[uuid.UUID]*Contact)}
}

func (r *MemoryRepository) Create(_ context.Context, c *Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *c
	r.contacts[c.ID] = &stored
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
