package domain

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// Booking represents a table reservation for one slot on one date
type Booking struct {
	ID        string           // assigned by the store, never reused
	Date      string           // YYYY-MM-DD
	Time      types.TimeString // slot label from the catalog
	Guests    int
	Name      string
	Contact   string
	CreatedAt time.Time
}

// Occupies returns true if the booking holds the given slot on the given date
func (b *Booking) Occupies(date string, slot types.TimeString) bool {
	return b.Date == date && b.Time.Equal(slot)
}

// TakenSlots returns the set of slot labels occupied by bookings on the given date
func TakenSlots(bookings []*Booking, date string) map[types.TimeString]struct{} {
	taken := make(map[types.TimeString]struct{}, len(bookings))
	for _, b := range bookings {
		if b.Date == date {
			taken[b.Time] = struct{}{}
		}
	}
	return taken
}
