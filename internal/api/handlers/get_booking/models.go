package get_booking

import (
	"time"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
	"github.com/kmlvnk/ST-BookingService/internal/service/bookings/models"
	"github.com/kmlvnk/ST-BookingService/pkg/ptr"
)

// CustomerPayload контактные данные клиента в HTTP-ответе
type CustomerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
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

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.BookingResponse) *BookingResponse {
	out := &BookingResponse{
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
		Status:             resp.Status,
		CancellationReason: resp.CancellationReason,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.CancelledAt != nil {
		out.CancelledAt = ptr.Ptr(resp.CancelledAt.Format(time.RFC3339))
	}

	return out
}
