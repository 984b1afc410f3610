package booking

// SlotAvailability is the derived state of one slot on one date
type SlotAvailability struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Availability returns every slot for date, marking as unavailable exactly the
// slots some booking on that date already holds. bookings may span other dates.
func Availability(date string, bookings []*Booking) []SlotAvailability {
	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if b.Date == date {
			taken[b.Time] = true
		}
	}

	out := make([]SlotAvailability, len(Slots))
	for i, slot := range Slots {
		out[i] = SlotAvailability{Time: slot, Available: !taken[slot]}
	}
	return out
}

// IsAvailable reports whether slot t on date is free in bookings
func IsAvailable(date, t string, bookings []*Booking) bool {
	if !IsSlot(t) {
		return false
	}
	for _, b := range bookings {
		if b.SameSlot(date, t) {
			return false
		}
	}
	return true
}
