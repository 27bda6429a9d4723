package create_booking

import (
	"time"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date      time.Time       // Дата бронирования (без времени)
	SlotLabel string          // Метка слота из каталога (например, "10:00")
	ServiceID int64           // ID услуги из каталога
	Customer  domain.Customer // Контактные данные клиента
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        string          // ID созданного бронирования
	Date      time.Time       // Дата бронирования
	SlotLabel string          // Метка слота
	ServiceID int64           // ID услуги
	Customer  domain.Customer // Контактные данные клиента
	Status    string          // Статус бронирования

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:           b.ID,
		Date:         b.SlotKey.Date,
		SlotLabel:    b.SlotKey.Label,
		ServiceID:    b.ServiceID,
		Customer:     b.Customer,
		Status:       string(b.Status),
		ServiceName:  b.ServiceName,
		ServicePrice: b.ServicePrice,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
