package booking

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/petgroom/petgroom-api/internal/pkg/errorhandler"
	"github.com/petgroom/petgroom-api/internal/pkg/response"
	"github.com/petgroom/petgroom-api/internal/pkg/validator"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Handler handles booking HTTP requests
type Handler struct {
	service  *Service
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates booking handler
func NewHandler(service *Service, hub *Hub, allowedOrigins []string) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// Create handles POST /bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	b, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			response.Conflict(w, "SLOT_TAKEN", "This time slot is already booked")
		default:
			errorhandler.Internal(r.Context(), w, "create booking", err)
		}
		return
	}

	response.Created(w, b)
}

// List handles GET /bookings[?date=YYYY-MM-DD]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		bookings []*Booking
		err      error
	)

	if date := r.URL.Query().Get("date"); date != "" {
		bookings, err = h.service.ListByDate(r.Context(), date)
	} else {
		bookings, err = h.service.List(r.Context())
	}
	if err != nil {
		h.queryError(w, r, "list bookings", err)
		return
	}

	response.OK(w, bookings)
}

// Delete handles DELETE /bookings/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// an id that cannot exist is simply not found
		response.NotFound(w, "Booking not found")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		default:
			errorhandler.Internal(r.Context(), w, "delete booking", err)
		}
		return
	}

	response.OK(w, DeleteBookingResponse{Message: "Booking deleted"})
}

// Availability handles GET /bookings/availability?date=YYYY-MM-DD
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		errorhandler.Validation(r.Context(), w, map[string]string{"date": "This field is required"})
		return
	}

	slots, err := h.service.Availability(r.Context(), date)
	if err != nil {
		h.queryError(w, r, "booking availability", err)
		return
	}

	response.OK(w, slots)
}

// Calendar handles GET /bookings/calendar
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.service.Calendar())
}

// Export handles GET /admin/bookings/export[?from=&to=]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	data, err := h.service.Export(r.Context(), from, to)
	if err != nil {
		h.queryError(w, r, "export bookings", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(from, to)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Feed handles GET /bookings/ws
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 32),
	}

	h.hub.Register(client)

	go h.wsReader(client)
	go h.wsWriter(client)
}

func (h *Handler) queryError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, ErrInvalidDate) {
		errorhandler.Validation(r.Context(), w, map[string]string{"date": "Invalid date, expected YYYY-MM-DD"})
		return
	}
	errorhandler.Internal(r.Context(), w, op, err)
}

// wsReader drains the connection; the feed is server-to-client only
func (h *Handler) wsReader(client *Client) {
	defer func() {
		h.hub.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Msg("Booking feed read error")
			}
			return
		}
	}
}

func (h *Handler) wsWriter(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
