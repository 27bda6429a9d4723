package get_booked_slots

import (
	"github.com/kmlvnk/ST-BookingService/internal/domain"
)

// BookedSlot занятый слот в HTTP-ответе
type BookedSlot struct {
	Date      string `json:"date"`
	SlotLabel string `json:"slotLabel"`
	BookingID string `json:"bookingId"`
}

// BookedSlotsResponse HTTP response model
type BookedSlotsResponse struct {
	Slots []BookedSlot `json:"slots"`
}

// FromReservations конвертирует доменные резервации в HTTP response
func FromReservations(reservations []domain.Reservation) *BookedSlotsResponse {
	slots := make([]BookedSlot, 0, len(reservations))
	for _, res := range reservations {
		slots = append(slots, BookedSlot{
			Date:      res.SlotKey.Date.Format(domain.DateFormat),
			SlotLabel: res.SlotKey.Label,
			BookingID: res.BookingID,
		})
	}
	return &BookedSlotsResponse{Slots: slots}
}
