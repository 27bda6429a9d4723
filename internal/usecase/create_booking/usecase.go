package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
	"github.com/kmlvnk/ST-BookingService/internal/infra/notify"
	reservationRepo "github.com/kmlvnk/ST-BookingService/internal/infra/storage/reservation"
)

// UseCase use case создания бронирования - механизм разрешения гонки
// за слот. Из N конкурентных вызовов на один (дата, слот) ровно один
// возвращает бронирование, остальные получают ErrSlotTaken.
type UseCase struct {
	bookingRepo  BookingRepository
	reservations ReservationStore
	catalog      Catalog
	publisher    NotificationPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	reservations ReservationStore,
	catalog Catalog,
	publisher NotificationPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		reservations: reservations,
		catalog:      catalog,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Порядок валидации фиксирован и обрывается на первой ошибке:
// слот -> дата -> услуга -> данные клиента. Только после этого делается
// попытка атомарно занять слот; проигрыш гонки возвращается как ErrSlotTaken,
// сконструированное бронирование при этом откатывается вместе с транзакцией
// и не оставляет следов ни в хранилище, ни в резервациях.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, slot=%s, service=%d",
		req.Date.Format(domain.DateFormat), req.SlotLabel, req.ServiceID)

	// 1. Метка слота должна быть в каталоге
	if !uc.catalog.IsValidSlot(req.SlotLabel) {
		uc.logger.Warn("CreateBooking: unknown slot label %q", req.SlotLabel)
		return nil, ErrInvalidSlot
	}

	// 2. Дата не в прошлом (в таймзоне бизнеса)
	now := uc.timeProvider.Now()
	if !uc.catalog.IsBookableDate(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrPastDate
	}

	// 3. Услуга должна быть в каталоге
	service, ok := uc.catalog.ServiceByID(req.ServiceID)
	if !ok {
		uc.logger.Warn("CreateBooking: unknown service id=%d", req.ServiceID)
		return nil, ErrInvalidService
	}

	// 4. Валидация данных клиента
	if err := validateCustomer(req.Customer); err != nil {
		uc.logger.Warn("CreateBooking: customer validation failed: %v", err)
		return nil, err
	}

	// 5. Генерируем ID и конструируем бронирование в статусе confirmed
	// До коммита транзакции оно не видно никаким чтениям
	booking := &domain.Booking{
		ID:           uuid.NewString(),
		SlotKey:      domain.NewSlotKey(req.Date, req.SlotLabel),
		ServiceID:    service.ID,
		Customer:     req.Customer,
		Status:       domain.StatusConfirmed,
		ServiceName:  service.Name,
		ServicePrice: service.Price,
	}

	// 6. Запись бронирования и захват слота в одной транзакции
	var result *domain.Booking
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrStoreUnavailable, err)
		}

		if err := uc.reservations.TryReserve(txCtx, booking.SlotKey, booking.ID); err != nil {
			if errors.Is(err, reservationRepo.ErrAlreadyReserved) {
				// Гонка проиграна: откатываем транзакцию вместе со вставленным
				// бронированием и сообщаем клиенту выбрать другой слот
				uc.logger.Warn("CreateBooking: slot %s already taken", booking.SlotKey)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to reserve slot %s: %v", booking.SlotKey, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		// Ошибка вне таксономии (например, begin/commit транзакции)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s for slot %s",
		result.ID, result.SlotKey)

	// 7. Уведомление вне транзакционной границы: медленный или упавший
	// канал доставки не должен блокировать или откатывать бронирование
	go uc.publishConfirmed(result)

	return toResponse(result), nil
}

func (uc *UseCase) publishConfirmed(b *domain.Booking) {
	event := notify.NewEvent(b, notify.EventConfirmed)
	if err := uc.publisher.Publish(context.Background(), event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish confirmed event for booking id=%s: %v", b.ID, err)
	}
}
