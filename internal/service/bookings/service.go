package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
	"github.com/kmlvnk/ST-BookingService/internal/infra/notify"
	bookingRepo "github.com/kmlvnk/ST-BookingService/internal/infra/storage/booking"
	reservationRepo "github.com/kmlvnk/ST-BookingService/internal/infra/storage/reservation"
	"github.com/kmlvnk/ST-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирования после создания:
// просмотр и отмена. Машина состояний: confirmed -> cancelled, терминально.
// Повторное бронирование отмененного слота создает новое бронирование
// с новым ID - записи не переиспользуются и не удаляются.
type Service struct {
	bookingRepo  BookingRepository
	reservations ReservationStore
	publisher    NotificationPublisher
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	reservations ReservationStore,
	publisher NotificationPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		reservations: reservations,
		publisher:    publisher,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: failed to get booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomain(booking), nil
}

// Cancel отменяет бронирование и освобождает его слот
//
// Статус и резервация меняются в одной транзакции: если хранилище
// занятости сообщает, что слот и так свободен, записи разошлись -
// транзакция откатывается и наружу уходит ErrInconsistentState.
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrStoreUnavailable, err)
		}

		if booking.IsCancelled() {
			return ErrAlreadyCancelled
		}

		if err := s.bookingRepo.Cancel(txCtx, id, req.Reason); err != nil {
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrStoreUnavailable, err)
		}

		if err := s.reservations.Release(txCtx, booking.SlotKey); err != nil {
			if errors.Is(err, reservationRepo.ErrNotReserved) {
				// Подтвержденное бронирование обязано держать свой слот.
				// Свободный слот здесь означает расхождение записей
				s.logger.Error("Cancel: reservation missing for confirmed booking id=%s, slot=%s",
					id, booking.SlotKey)
				return fmt.Errorf("%w: booking id=%s, slot=%s", ErrInconsistentState, id, booking.SlotKey)
			}
			return fmt.Errorf("%w: failed to release slot: %v", ErrStoreUnavailable, err)
		}

		cancelled = booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrAlreadyCancelled),
			errors.Is(err, ErrInconsistentState),
			errors.Is(err, ErrStoreUnavailable):
			return err
		default:
			// Ошибка вне таксономии (например, begin/commit транзакции)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: booking id=%s cancelled, slot %s released", id, cancelled.SlotKey)

	// Уведомление после коммита, best-effort
	go s.publishCancelled(cancelled)

	return nil
}

func (s *Service) publishCancelled(b *domain.Booking) {
	event := notify.NewEvent(b, notify.EventCancelled)
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		s.logger.Error("Cancel: failed to publish cancelled event for booking id=%s: %v", b.ID, err)
	}
}
