// Package client talks to the storefront booking API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/petgroom/petgroom-api/internal/domain/booking"
)

// Config holds API client configuration
type Config struct {
	BaseURL string // e.g. http://localhost:8080/api
	Timeout time.Duration
}

// Client is a booking API client. It satisfies booking.BookingCreator, so a
// booking.Flow can submit through it.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// APIError is a non-2xx answer carrying the server's error envelope
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

// New creates a client
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// CreateBooking posts a booking. Field errors come back as
// *booking.ValidationError and a taken slot as booking.ErrSlotTaken.
func (c *Client) CreateBooking(ctx context.Context, req *booking.CreateBookingRequest) (*booking.Booking, error) {
	var out booking.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBookings returns all bookings, or those of one date when date is set
func (c *Client) ListBookings(ctx context.Context, date string) ([]*booking.Booking, error) {
	path := "/bookings"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}

	var out []*booking.Booking
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Calendar returns the current month as the server sees it
func (c *Client) Calendar(ctx context.Context) (*booking.Calendar, error) {
	var out booking.Calendar
	if err := c.do(ctx, http.MethodGet, "/bookings/calendar", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Availability returns the slot grid of a date
func (c *Client) Availability(ctx context.Context, date string) ([]booking.SlotAvailability, error) {
	var out []booking.SlotAvailability
	if err := c.do(ctx, http.MethodGet, "/bookings/availability?date="+url.QueryEscape(date), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api call failed: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api call failed: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to parse api response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return toError(resp.StatusCode, &env)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to parse api data: %w", err)
	}
	return nil
}

func toError(status int, env *envelope) error {
	apiErr := &APIError{Status: status}
	if env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	}

	switch {
	case status == http.StatusUnprocessableEntity && env.Error != nil && len(env.Error.Details) > 0:
		return &booking.ValidationError{Fields: env.Error.Details}
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %s", booking.ErrSlotTaken, apiErr.Message)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %w", booking.ErrBookingNotFound, apiErr)
	}
	return apiErr
}

// IsRetryable reports whether err is worth retrying as is
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 || apiErr.Status == http.StatusTooManyRequests
	}
	return !errors.Is(err, booking.ErrSlotTaken) && !errors.As(err, new(*booking.ValidationError))
}
