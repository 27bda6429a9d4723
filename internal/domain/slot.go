package domain

import (
	"fmt"
	"time"
)

// SlotKey identifies one bookable time slot: a calendar day plus one of the
// catalog's fixed slot labels. It is the unit of contention for reservations.
// Equality is exact date and string match, no overlap semantics.
type SlotKey struct {
	Date  time.Time // calendar day in the business timezone, no time component
	Label string    // one of the catalog slot labels, e.g. "10:00"
}

// NewSlotKey builds a SlotKey with the time component stripped from date
func NewSlotKey(date time.Time, label string) SlotKey {
	return SlotKey{
		Date:  time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		Label: label,
	}
}

// String returns the canonical "YYYY-MM-DD-label" form of the key
func (k SlotKey) String() string {
	return fmt.Sprintf("%s-%s", k.Date.Format(DateFormat), k.Label)
}

// Reservation is one entry of the reservation store: a slot held by a booking
type Reservation struct {
	SlotKey   SlotKey
	BookingID string
	CreatedAt time.Time
}
