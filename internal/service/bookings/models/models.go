package models

import (
	"time"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
)

// CancelBookingRequest модель запроса на отмену бронирования
type CancelBookingRequest struct {
	Reason string
}

// BookingResponse модель бронирования для внешних слоев
type BookingResponse struct {
	ID           string
	Date         time.Time
	SlotLabel    string
	ServiceID    int64
	ServiceName  string
	ServicePrice float64
	Customer     domain.Customer
	Status       string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromDomain конвертирует доменное бронирование в ответ сервиса
func FromDomain(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		Date:               b.SlotKey.Date,
		SlotLabel:          b.SlotKey.Label,
		ServiceID:          b.ServiceID,
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		Customer:           b.Customer,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
