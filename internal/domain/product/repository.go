package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines product data access
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category Category) ([]*Product, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates product repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	query := r.db.Rebind(`
		INSERT INTO products (id, name, description, price, category, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	if err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT * FROM products WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*Product, error) {
	products := []*Product{}
	if err := r.db.SelectContext(ctx, &products, `SELECT * FROM products ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *repository) ListByCategory(ctx context.Context, category Category) ([]*Product, error) {
	products := []*Product{}
	query := r.db.Rebind(`SELECT * FROM products WHERE category = ? ORDER BY created_at, id`)
	if err := r.db.SelectContext(ctx, &products, query, category); err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return products, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// MemoryRepository keeps products in process memory
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*Product
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[uuid.UUID]*Product)}
}

func (r *MemoryRepository) Create(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.products[p.ID] = &c
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.products[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Product, error) {
	return r.filter(func(*Product) bool { return true }), nil
}

func (r *MemoryRepository) ListByCategory(_ context.Context, category Category) ([]*Product, error) {
	return r.filter(func(p *Product) bool { return p.Category == category }), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

func (r *MemoryRepository) filter(keep func(*Product) bool) []*Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Product, 0, len(r.products))
	for _, p := range r.products {
		if keep(p) {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
