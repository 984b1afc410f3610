package gallery

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

// Repository defines gallery data access
type Repository interface {
	Create(ctx context.Context, img *Image) error
	GetByID(ctx context.Context, id uuid.UUID) (*Image, error)
	List(ctx context.Context) ([]*Image, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)

	// ClaimRemote picks the oldest remote image with attempts left and
	// counts the attempt. Returns nil when there is nothing to mirror.
	ClaimRemote(ctx context.Context, maxAttempts int) (*Image, error)
	MarkMirrored(ctx context.Context, id uuid.UUID, url, thumbnailURL, storageKey string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates gallery repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, img *Image) error {
	query := r.db.Rebind(`
		INSERT INTO gallery_images (id, url, thumbnail_url, storage_key, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		img.ID, img.URL, img.ThumbnailURL, img.StorageKey, img.Description, img.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert gallery image: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Image, error) {
	var img Image
	query := r.db.Rebind(`SELECT * FROM gallery_images WHERE id = ?`)
	if err := r.db.GetContext(ctx, &img, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gallery image: %w", err)
	}
	return &img, nil
}

func (r *repository) List(ctx context.Context) ([]*Image, error) {
	images := []*Image{}
	if err := r.db.SelectContext(ctx, &images, `SELECT * FROM gallery_images ORDER BY created_at DESC, id`); err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	return images, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM gallery_images WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete gallery image: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM gallery_images`); err != nil {
		return 0, fmt.Errorf("count gallery images: %w", err)
	}
	return n, nil
}

func (r *repository) ClaimRemote(ctx context.Context, maxAttempts int) (*Image, error) {
	var img Image
	query := r.db.Rebind(`
		SELECT * FROM gallery_images
		WHERE storage_key IS NULL
		  AND (url LIKE 'http://%' OR url LIKE 'https://%')
		  AND mirror_attempts < ?
		ORDER BY created_at ASC
		LIMIT 1
	`)
	if err := r.db.GetContext(ctx, &img, query, maxAttempts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select remote gallery image: %w", err)
	}

	// Claim atomically (safe with several workers)
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE gallery_images
		SET mirror_attempts = mirror_attempts + 1
		WHERE id = ? AND mirror_attempts = ? AND storage_key IS NULL
	`), img.ID, img.MirrorAttempts)
	if err != nil {
		return nil, fmt.Errorf("claim remote gallery image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}

	img.MirrorAttempts++
	return &img, nil
}

func (r *repository) MarkMirrored(ctx context.Context, id uuid.UUID, url, thumbnailURL, storageKey string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE gallery_images
		SET url = ?, thumbnail_url = ?, storage_key = ?
		WHERE id = ?
	`), url, thumbnailURL, storageKey, id)
	if err != nil {
		return fmt.Errorf("mark gallery image mirrored: %w", err)
	}
	return nil
}

// MemoryRepository keeps gallery images in process memory
type MemoryRepository struct {
	mu     sync.RWMutex
	images map[uuid.UUID]*Image
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{images: make(map[uuid.UUID]*Image)}
}

func (r *MemoryRepository) Create(_ context.Context, img *Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *img
	r.images[img.ID] = &c
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if img, ok := r.images[id]; ok {
		c := *img
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Image, 0, len(r.images))
	for _, img := range r.images {
		c := *img
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.images[id]; !ok {
		return false, nil
	}
	delete(r.images, id)
	return true, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.images), nil
}

func (r *MemoryRepository) ClaimRemote(_ context.Context, maxAttempts int) (*Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var next *Image
	for _, img := range r.images {
		if !img.IsRemote() || img.MirrorAttempts >= maxAttempts {
			continue
		}
		if next == nil || img.CreatedAt.Before(next.CreatedAt) {
			next = img
		}
	}
	if next == nil {
		return nil, nil
	}

	next.MirrorAttempts++
	c := *next
	return &c, nil
}

func (r *MemoryRepository) MarkMirrored(_ context.Context, id uuid.UUID, url, thumbnailURL, storageKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	img, ok := r.images[id]
	if !ok {
		return ErrImageNotFound
	}
	img.URL = url
	img.ThumbnailURL = sql.NullString{String: thumbnailURL, Valid: true}
	img.StorageKey = sql.NullString{String: storageKey, Valid: true}
	return nil
}
