package get_booked_slots

import (
	"context"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
)

type ReservationStore interface {
	ListReserved(ctx context.Context) ([]domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
