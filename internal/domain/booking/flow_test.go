package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeCreator submits straight into a Service, like the API would
type storeCreator struct {
	svc  *Service
	fail error
}

func (c *storeCreator) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	return c.svc.Create(ctx, req)
}

var flowToday = time.Date(2024, time.June, 9, 10, 0, 0, 0, time.Local)

func TestFlowHappyPath(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil, false)
	creator := &storeCreator{svc: svc}

	f := NewFlow(flowToday, nil)
	assert.Equal(t, StateSelectingDate, f.State())

	require.NoError(t, f.SelectDate("2024-06-10"))
	assert.Equal(t, StateSelectingTime, f.State())
	assert.Len(t, f.Slots(), len(Slots))

	require.NoError(t, f.SelectTime("10:00"))
	assert.Equal(t, StateFillingForm, f.State())
	assert.Equal(t, "2024-06-10", f.Form().Date)
	assert.Equal(t, "10:00", f.Form().Time)

	b, err := f.Submit(context.Background(), creator, "Ana", "11999990000", "banho")
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, f.State())
	assert.Equal(t, b, f.Booking())

	_, err = f.Submit(context.Background(), creator, "Ana", "11999990000", "banho")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFlowRejectsPastDateAndTakenSlot(t *testing.T) {
	snapshot := []*Booking{{Date: "2024-06-10", Time: "10:00"}}
	f := NewFlow(flowToday, snapshot)

	assert.ErrorIs(t, f.SelectDate("2024-06-08"), ErrDateNotSelectable)
	assert.Equal(t, StateSelectingDate, f.State())

	assert.ErrorIs(t, f.SelectTime("10:00"), ErrInvalidTransition)

	require.NoError(t, f.SelectDate("2024-06-10"))
	assert.ErrorIs(t, f.SelectTime("10:00"), ErrSlotUnavailable)
	assert.Equal(t, StateSelectingTime, f.State())
	assert.Empty(t, f.SelectedTime())

	assert.ErrorIs(t, f.SelectTime("12:00"), ErrSlotUnavailable)

	require.NoError(t, f.SelectTime("11:00"))
	assert.Equal(t, StateFillingForm, f.State())
}

func TestFlowFailureKeepsForm(t *testing.T) {
	creator := &storeCreator{fail: errors.New("server unavailable")}
	f := NewFlow(flowToday, nil)
	require.NoError(t, f.SelectDate("2024-06-10"))
	require.NoError(t, f.SelectTime("14:00"))

	_, err := f.Submit(context.Background(), creator, "Ana", "11999990000", "tosa")
	require.Error(t, err)
	assert.Equal(t, StateFillingForm, f.State())
	assert.Equal(t, err, f.Err())

	form := f.Form()
	assert.Equal(t, "Ana", form.Name)
	assert.Equal(t, "11999990000", form.Phone)
	assert.Equal(t, "tosa", form.Service)
	assert.Equal(t, "14:00", form.Time)

	// retry succeeds without re-entering the date or time
	creator.fail = nil
	creator.svc = NewService(NewMemoryRepository(), nil, nil, false)
	_, err = f.Submit(context.Background(), creator, form.Name, form.Phone, form.Service)
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, f.State())
	assert.NoError(t, f.Err())
}

func TestFlowValidationErrorIsPerField(t *testing.T) {
	f := NewFlow(flowToday, nil)
	require.NoError(t, f.SelectDate("2024-06-10"))
	require.NoError(t, f.SelectTime("09:00"))

	_, err := f.Submit(context.Background(), &storeCreator{}, " ", "", "corte")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "phone")
	assert.Contains(t, verr.Fields, "service")
	assert.Equal(t, StateFillingForm, f.State())
}

func TestFlowResetReturnsToDateSelection(t *testing.T) {
	f := NewFlow(flowToday, nil)
	require.NoError(t, f.SelectDate("2024-06-10"))
	require.NoError(t, f.SelectTime("09:00"))

	f.Reset(flowToday, nil)
	assert.Equal(t, StateSelectingDate, f.State())
	assert.Empty(t, f.SelectedDate())
	assert.Empty(t, f.SelectedTime())
}

func TestFlowSnapshotRace(t *testing.T) {
	// two customers open the flow from the same snapshot and both get 10:00
	svc := NewService(NewMemoryRepository(), nil, nil, false)
	creator := &storeCreator{svc: svc}

	first := NewFlow(flowToday, nil)
	second := NewFlow(flowToday, nil)
	for _, f := range []*Flow{first, second} {
		require.NoError(t, f.SelectDate("2024-06-10"))
		require.NoError(t, f.SelectTime("10:00"))
	}

	_, err := first.Submit(context.Background(), creator, "Ana", "11999990000", "banho")
	require.NoError(t, err)
	_, err = second.Submit(context.Background(), creator, "Bia", "11988880000", "tosa")
	require.NoError(t, err)

	onDate, err := svc.ListByDate(context.Background(), "2024-06-10")
	require.NoError(t, err)
	assert.Len(t, onDate, 2)

	// a refreshed snapshot hides the slot
	third := NewFlow(flowToday, onDate)
	require.NoError(t, third.SelectDate("2024-06-10"))
	assert.ErrorIs(t, third.SelectTime("10:00"), ErrSlotUnavailable)
}

func TestFlowStateString(t *testing.T) {
	assert.Equal(t, "filling_form", StateFillingForm.String())
	assert.Equal(t, "FlowState(9)", FlowState(9).String())
}
