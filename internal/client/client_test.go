package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petgroom/petgroom-api/internal/domain/booking"
)

func newServer(t *testing.T, enforce bool) (*httptest.Server, *booking.Service) {
	t.Helper()
	svc := booking.NewService(booking.NewMemoryRepository(), nil, booking.NewLocalSlotLocker(), enforce)
	h := booking.NewHandler(svc, nil, nil)

	passthrough := func(next http.Handler) http.Handler { return next }
	r := chi.NewRouter()
	r.Mount("/api/bookings", h.Routes(passthrough, passthrough))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, svc
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format(booking.DateLayout)
}

func TestCreateAndList(t *testing.T) {
	srv, _ := newServer(t, false)
	c := New(Config{BaseURL: srv.URL + "/api/"})
	ctx := context.Background()

	b, err := c.CreateBooking(ctx, &booking.CreateBookingRequest{
		Name: "Ana", Phone: "11999990000", Service: "tosa", Date: tomorrow(), Time: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", b.Name)
	assert.Equal(t, booking.ServiceTosa, b.Service)

	list, err := c.ListBookings(ctx, tomorrow())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	slots, err := c.Availability(ctx, tomorrow())
	require.NoError(t, err)
	require.Len(t, slots, len(booking.Slots))
	assert.Equal(t, booking.SlotAvailability{Time: "09:00", Available: false}, slots[0])
}

func TestValidationErrorsAreTyped(t *testing.T) {
	srv, _ := newServer(t, false)
	c := New(Config{BaseURL: srv.URL + "/api"})

	_, err := c.CreateBooking(context.Background(), &booking.CreateBookingRequest{
		Name: "", Phone: "1", Service: "corte", Date: tomorrow(), Time: "09:00",
	})
	var verr *booking.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "service")
	assert.False(t, IsRetryable(err))
}

func TestSlotConflictMapsToErrSlotTaken(t *testing.T) {
	srv, _ := newServer(t, true)
	c := New(Config{BaseURL: srv.URL + "/api"})
	ctx := context.Background()

	req := &booking.CreateBookingRequest{Name: "Ana", Phone: "1", Service: "banho", Date: tomorrow(), Time: "10:00"}
	_, err := c.CreateBooking(ctx, req)
	require.NoError(t, err)

	_, err = c.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, booking.ErrSlotTaken)
}

func TestServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"INTERNAL_ERROR","message":"boom"}}`))
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).Calendar(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "INTERNAL_ERROR", apiErr.Code)
	assert.True(t, IsRetryable(err))
}

func TestFlowSubmitsThroughClient(t *testing.T) {
	srv, svc := newServer(t, false)
	c := New(Config{BaseURL: srv.URL + "/api"})
	ctx := context.Background()

	snapshot, err := c.ListBookings(ctx, "")
	require.NoError(t, err)

	today := time.Now()
	flow := booking.NewFlow(today, snapshot)

	// pick the first selectable day of the month
	var date string
	for _, cell := range flow.Calendar().Cells {
		if cell.Selectable {
			date = cell.Date
			break
		}
	}
	if date == "" {
		t.Skip("no selectable day left in the current month")
	}

	require.NoError(t, flow.SelectDate(date))
	require.NoError(t, flow.SelectTime("14:00"))
	b, err := flow.Submit(ctx, c, "Bruno", "11988887777", "banho")
	require.NoError(t, err)
	assert.Equal(t, booking.StateSubmitted, flow.State())

	stored, err := svc.ListByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, b.ID, stored[0].ID)
}
