package booking

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps bookings in process memory
type MemoryRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*Booking
}

// NewMemoryRepository creates an empty in-memory store
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{bookings: make(map[uuid.UUID]*Booking)}
}

func (r *MemoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Booking, error) {
	return r.filter(func(*Booking) bool { return true }), nil
}

func (r *MemoryRepository) ListByDate(_ context.Context, date string) ([]*Booking, error) {
	return r.filter(func(b *Booking) bool { return b.Date == date }), nil
}

func (r *MemoryRepository) ListBetween(_ context.Context, from, to string) ([]*Booking, error) {
	return r.filter(func(b *Booking) bool {
		return (from == "" || b.Date >= from) && (to == "" || b.Date <= to)
	}), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

// filter returns copies ordered like the SQL store: newest first, then id
func (r *MemoryRepository) filter(keep func(*Booking) bool) []*Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if keep(b) {
			c := *b
			out = append(out, &c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out
}
