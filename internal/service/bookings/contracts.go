package bookings

import (
	"context"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
	"github.com/kmlvnk/ST-BookingService/internal/infra/notify"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Cancel(ctx context.Context, id string, reason string) error
}

// ReservationStore интерфейс хранилища занятости слотов
type ReservationStore interface {
	Release(ctx context.Context, key domain.SlotKey) error
}

// NotificationPublisher интерфейс публикации событий бронирования
type NotificationPublisher interface {
	Publish(ctx context.Context, event notify.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
