package get_available_slots

import (
	"context"
	"time"
)

// ReservationStore интерфейс хранилища занятости слотов
type ReservationStore interface {
	// ReservedLabels возвращает метки занятых слотов на дату (один запрос на дату)
	ReservedLabels(ctx context.Context, date time.Time) ([]string, error)
}

// Catalog интерфейс статического каталога слотов
type Catalog interface {
	SlotLabels() []string
	IsBookableDate(date time.Time, now time.Time) bool
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
