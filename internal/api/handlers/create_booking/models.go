package create_booking

import (
	"time"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
	createBooking "github.com/kmlvnk/ST-BookingService/internal/usecase/create_booking"
)

// CustomerPayload контактные данные клиента в HTTP-запросе
type CustomerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"` // телефон/WhatsApp
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date      string          `json:"date"` // "2025-06-10"
	SlotLabel string          `json:"slotLabel"`
	ServiceID int64           `json:"serviceId"`
	Customer  CustomerPayload `json:"customer"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	SlotLabel    string          `json:"slotLabel"`
	ServiceID    int64           `json:"serviceId"`
	ServiceName  string          `json:"serviceName"`
	ServicePrice float64         `json:"servicePrice"`
	Customer     CustomerPayload `json:"customer"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Date:      date,
		SlotLabel: r.SlotLabel,
		ServiceID: r.ServiceID,
		Customer: domain.Customer{
			Name:    r.Customer.Name,
			Email:   r.Customer.Email,
			Contact: r.Customer.Contact,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		Date:         resp.Date.Format(domain.DateFormat),
		SlotLabel:    resp.SlotLabel,
		ServiceID:    resp.ServiceID,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Customer: CustomerPayload{
			Name:    resp.Customer.Name,
			Email:   resp.Customer.Email,
			Contact: resp.Customer.Contact,
		},
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
