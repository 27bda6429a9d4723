package get_available_slots

import (
	"context"
	"fmt"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
)

// UseCase use case получения доступных слотов на дату
//
// Результат - рекомендательное представление для выбора слота в UI.
// Между этим чтением и последующим бронированием слот может занять
// кто-то другой: финальным арбитром всегда остается TryReserve,
// клиент обязан перепроверять на сабмите, а не на рендере.
type UseCase struct {
	reservations ReservationStore
	catalog      Catalog
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservations ReservationStore, catalog Catalog, logger Logger) *UseCase {
	return &UseCase{
		reservations: reservations,
		catalog:      catalog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Для недоступной (прошедшей) даты возвращает пустой список, а не ошибку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	// Прошедшая дата: бронировать нечего, слотов нет
	if !uc.catalog.IsBookableDate(req.Date, now) {
		return &Response{Date: req.Date, Slots: []string{}}, nil
	}

	reserved, err := uc.reservations.ReservedLabels(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reserved labels: %v", err)
		return nil, fmt.Errorf("%w: failed to get reserved labels: %v", ErrStoreUnavailable, err)
	}

	reservedSet := make(map[string]struct{}, len(reserved))
	for _, label := range reserved {
		reservedSet[label] = struct{}{}
	}

	// Порядок каталога сохраняется, занятые метки исключаются
	free := make([]string, 0, len(uc.catalog.SlotLabels()))
	for _, label := range uc.catalog.SlotLabels() {
		if _, taken := reservedSet[label]; !taken {
			free = append(free, label)
		}
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots free on %s",
		len(free), len(uc.catalog.SlotLabels()), req.Date.Format(domain.DateFormat))

	return &Response{Date: req.Date, Slots: free}, nil
}
