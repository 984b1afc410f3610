package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/petgroom/petgroom-api/internal/pkg/validator"
)

// ServiceType is the grooming service booked
type ServiceType string

const (
	ServiceTosa  ServiceType = "tosa"
	ServiceBanho ServiceType = "banho"
)

// Services lists every bookable service
var Services = []ServiceType{ServiceTosa, ServiceBanho}

// Slots are the fixed daily appointment times, in display order
var Slots = []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"}

// DateLayout is the wire and storage format of Booking.Date
const DateLayout = "2006-01-02"

func init() {
	validator.RegisterEnum("booking_slot", Slots...)
	names := make([]string, len(Services))
	for i, s := range Services {
		names[i] = string(s)
	}
	validator.RegisterEnum("booking_service", names...)
}

// Booking is one scheduled grooming appointment
type Booking struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	Name      string      `db:"name" json:"name"`
	Phone     string      `db:"phone" json:"phone"`
	Service   ServiceType `db:"service" json:"service"`
	Date      string      `db:"date" json:"date"`
	Time      string      `db:"time" json:"time"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

// IsSlot reports whether t is one of the fixed slots
func IsSlot(t string) bool {
	for _, s := range Slots {
		if s == t {
			return true
		}
	}
	return false
}

// SameSlot reports whether b occupies date at time
func (b *Booking) SameSlot(date, t string) bool {
	return b.Date == date && b.Time == t
}
