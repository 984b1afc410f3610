package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/petgroom/petgroom-api/internal/pkg/metrics"
)

// EventPublisher receives booking changes for the realtime feed
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

// Service handles booking business logic
type Service struct {
	repo         Repository
	events       EventPublisher
	locker       SlotLocker
	enforceSlots bool
	now          func() time.Time
}

// NewService creates booking service. With enforceSlots false a create never
// looks at existing bookings, so two creates for the same date and time both
// succeed. With enforceSlots true the create is conditional on the slot being
// free and locker must be set.
func NewService(repo Repository, events EventPublisher, locker SlotLocker, enforceSlots bool) *Service {
	return &Service{
		repo:         repo,
		events:       events,
		locker:       locker,
		enforceSlots: enforceSlots && locker != nil,
		now:          time.Now,
	}
}

// Create stores a new booking. The request must already be validated.
func (s *Service) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	b := &Booking{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Service:   ServiceType(req.Service),
		Date:      req.Date,
		Time:      req.Time,
		CreatedAt: s.now(),
	}

	if s.enforceSlots {
		release, err := s.claimSlot(ctx, b.Date, b.Time)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.IncBookingCreated(string(b.Service))
	log.Info().
		Str("booking_id", b.ID.String()).
		Str("date", b.Date).
		Str("slot", b.Time).
		Str("service", string(b.Service)).
		Msg("Booking created")

	s.publish(ctx, EventBookingCreated, b)
	return b, nil
}

// claimSlot locks the slot and checks that no stored booking holds it
func (s *Service) claimSlot(ctx context.Context, date, t string) (func(), error) {
	token, ok, err := s.locker.Acquire(ctx, date, t)
	if err != nil {
		return nil, fmt.Errorf("lock slot: %w", err)
	}
	if !ok {
		metrics.IncSlotConflict()
		return nil, ErrSlotTaken
	}

	release := func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), date, t, token); err != nil {
			log.Warn().Err(err).Str("date", date).Str("slot", t).Msg("Failed to release slot lock")
		}
	}

	existing, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		release()
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if !IsAvailable(date, t, existing) {
		release()
		metrics.IncSlotConflict()
		return nil, ErrSlotTaken
	}

	return release, nil
}

// List returns all bookings, newest first
func (s *Service) List(ctx context.Context) ([]*Booking, error) {
	return s.repo.List(ctx)
}

// ListByDate returns the bookings on date
func (s *Service) ListByDate(ctx context.Context, date string) ([]*Booking, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	return s.repo.ListByDate(ctx, date)
}

// Delete removes a booking
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}
	if existing == nil {
		return ErrBookingNotFound
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if !ok {
		// removed concurrently
		return ErrBookingNotFound
	}

	metrics.IncBookingDeleted()
	log.Info().Str("booking_id", id.String()).Msg("Booking deleted")

	s.publish(ctx, EventBookingDeleted, existing)
	return nil
}

// Availability computes the slots of date from the current store contents
func (s *Service) Availability(ctx context.Context, date string) ([]SlotAvailability, error) {
	bookings, err := s.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return Availability(date, bookings), nil
}

// Calendar returns the grid of the current month
func (s *Service) Calendar() Calendar {
	return GenerateCalendar(s.now())
}

// ListBetween returns bookings with dates in [from, to]
func (s *Service) ListBetween(ctx context.Context, from, to string) ([]*Booking, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if err := checkDate(d); err != nil {
			return nil, err
		}
	}
	return s.repo.ListBetween(ctx, from, to)
}

func (s *Service) publish(ctx context.Context, eventType string, b *Booking) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, Event{
		Type:      eventType,
		BookingID: b.ID.String(),
		Date:      b.Date,
		Time:      b.Time,
	})
}

func checkDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
