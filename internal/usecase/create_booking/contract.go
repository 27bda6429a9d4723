package create_booking

import (
	"context"
	"time"

	"github.com/kmlvnk/ST-BookingService/internal/catalog"
	"github.com/kmlvnk/ST-BookingService/internal/domain"
	"github.com/kmlvnk/ST-BookingService/internal/infra/notify"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ReservationStore интерфейс хранилища занятости слотов
// TryReserve - единственная точка линеаризации: из конкурентных вызовов
// для одного слота ровно один завершается успехом
type ReservationStore interface {
	TryReserve(ctx context.Context, key domain.SlotKey, bookingID string) error
}

// Catalog интерфейс статического каталога слотов и услуг
type Catalog interface {
	IsValidSlot(label string) bool
	IsBookableDate(date time.Time, now time.Time) bool
	ServiceByID(id int64) (catalog.Service, bool)
}

// NotificationPublisher интерфейс публикации событий бронирования
// Публикация best-effort и выполняется после коммита транзакции
type NotificationPublisher interface {
	Publish(ctx context.Context, event notify.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
