package booking

import "errors"

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrSlotTaken         = errors.New("time slot already booked")
	ErrSlotUnavailable   = errors.New("time slot is not available")
	ErrDateNotSelectable = errors.New("date is not selectable")
	ErrInvalidTransition = errors.New("action not allowed in current booking step")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
)
