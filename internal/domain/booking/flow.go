package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/petgroom/petgroom-api/internal/pkg/validator"
)

// FlowState is the current step of the booking flow
type FlowState int

const (
	StateSelectingDate FlowState = iota
	StateSelectingTime
	StateFillingForm
	StateSubmitted
)

func (s FlowState) String() string {
	switch s {
	case StateSelectingDate:
		return "selecting_date"
	case StateSelectingTime:
		return "selecting_time"
	case StateFillingForm:
		return "filling_form"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("FlowState(%d)", int(s))
	}
}

// BookingCreator submits a booking to the store
type BookingCreator interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*Booking, error)
}

// ValidationError carries per-field messages of a rejected submission
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Flow walks one customer through date, time and contact details. Availability
// comes from the bookings snapshot taken when the flow opened, so two flows can
// both offer the same slot.
type Flow struct {
	state    FlowState
	calendar Calendar
	snapshot []*Booking
	slots    []SlotAvailability
	form     CreateBookingRequest
	booking  *Booking
	err      error
}

// NewFlow opens the flow at StateSelectingDate
func NewFlow(today time.Time, snapshot []*Booking) *Flow {
	f := &Flow{}
	f.Reset(today, snapshot)
	return f
}

// Reset reopens the flow: everything entered is discarded
func (f *Flow) Reset(today time.Time, snapshot []*Booking) {
	*f = Flow{
		state:    StateSelectingDate,
		calendar: GenerateCalendar(today),
		snapshot: snapshot,
	}
}

func (f *Flow) State() FlowState           { return f.state }
func (f *Flow) Calendar() Calendar         { return f.calendar }
func (f *Flow) Slots() []SlotAvailability  { return f.slots }
func (f *Flow) SelectedDate() string       { return f.form.Date }
func (f *Flow) SelectedTime() string       { return f.form.Time }
func (f *Flow) Form() CreateBookingRequest { return f.form }
func (f *Flow) Booking() *Booking          { return f.booking }
func (f *Flow) Err() error                 { return f.err }

// UpdateSnapshot replaces the bookings availability is computed from
func (f *Flow) UpdateSnapshot(snapshot []*Booking) {
	f.snapshot = snapshot
	if f.form.Date != "" {
		f.slots = Availability(f.form.Date, snapshot)
	}
}

// SelectDate picks a day of the calendar. Allowed until the booking is
// submitted; picking again clears the chosen time.
func (f *Flow) SelectDate(date string) error {
	if f.state == StateSubmitted {
		return ErrInvalidTransition
	}
	if !f.calendar.Selectable(date) {
		return ErrDateNotSelectable
	}

	f.form.Date = date
	f.form.Time = ""
	f.slots = Availability(date, f.snapshot)
	f.err = nil
	f.state = StateSelectingTime
	return nil
}

// SelectTime picks a slot on the selected date. Taken or unknown slots are
// rejected and the state does not change.
func (f *Flow) SelectTime(t string) error {
	if f.state != StateSelectingTime && f.state != StateFillingForm {
		return ErrInvalidTransition
	}
	if !IsAvailable(f.form.Date, t, f.snapshot) {
		return ErrSlotUnavailable
	}

	f.form.Time = t
	f.err = nil
	f.state = StateFillingForm
	return nil
}

// Submit sends the booking. On any failure the flow stays in
// StateFillingForm with the entered values kept and the error recorded.
func (f *Flow) Submit(ctx context.Context, creator BookingCreator, name, phone, service string) (*Booking, error) {
	if f.state != StateFillingForm {
		return nil, ErrInvalidTransition
	}

	f.form.Name = name
	f.form.Phone = phone
	f.form.Service = service

	if errs := validator.Validate(&f.form); errs != nil {
		f.err = &ValidationError{Fields: errs}
		return nil, f.err
	}

	req := f.form
	b, err := creator.CreateBooking(ctx, &req)
	if err != nil {
		f.err = err
		return nil, err
	}

	f.booking = b
	f.err = nil
	f.state = StateSubmitted
	return b, nil
}
