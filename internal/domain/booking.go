package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Customer holds the contact details collected with a booking
type Customer struct {
	Name    string
	Email   string
	Contact string
}

// Booking represents a customer's claim on one slot for one service.
// Created only by the create_booking use case; the only mutation afterwards
// is the transition to cancelled. Bookings are never deleted.
type Booking struct {
	ID        string // opaque unique id, assigned at creation
	SlotKey   SlotKey
	ServiceID int64
	Customer  Customer
	Status    BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}
