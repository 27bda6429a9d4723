package notify

import (
	"github.com/kmlvnk/ST-BookingService/internal/domain"
)

// EventType тип события бронирования
type EventType string

const (
	EventConfirmed EventType = "confirmed"
	EventCancelled EventType = "cancelled"
)

// Event событие бронирования, публикуемое в очередь уведомлений
// Консьюмеры (email, WhatsApp) находятся за пределами сервиса
type Event struct {
	BookingID string    `json:"bookingId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	SlotLabel string    `json:"slotLabel"`
	ServiceID int64     `json:"serviceId"`
	Customer  Customer  `json:"customer"`
	EventType EventType `json:"eventType"`
}

// Customer контактные данные клиента в событии
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// NewEvent собирает событие из бронирования
func NewEvent(b *domain.Booking, eventType EventType) Event {
	return Event{
		BookingID: b.ID,
		Date:      b.SlotKey.Date.Format(domain.DateFormat),
		SlotLabel: b.SlotKey.Label,
		ServiceID: b.ServiceID,
		Customer: Customer{
			Name:    b.Customer.Name,
			Email:   b.Customer.Email,
			Contact: b.Customer.Contact,
		},
		EventType: eventType,
	}
}
