package booking

// CreateBookingRequest is the body of POST /bookings
type CreateBookingRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=120"`
	Phone   string `json:"phone" validate:"required,notblank,max=30"`
	Service string `json:"service" validate:"required,booking_service"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required,booking_slot"`
}

// DeleteBookingResponse is returned after a successful delete
type DeleteBookingResponse struct {
	Message string `json:"message"`
}

// Event types sent on the booking feed
const (
	EventBookingCreated = "booking_created"
	EventBookingDeleted = "booking_deleted"
)

// Event is one message on the booking feed
type Event struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}
