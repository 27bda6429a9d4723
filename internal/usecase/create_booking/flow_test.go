package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvnk/ST-BookingService/internal/catalog"
	"github.com/kmlvnk/ST-BookingService/internal/config"
	"github.com/kmlvnk/ST-BookingService/internal/domain"
	bookingRepoPkg "github.com/kmlvnk/ST-BookingService/internal/infra/storage/booking"
	reservationRepoPkg "github.com/kmlvnk/ST-BookingService/internal/infra/storage/reservation"
	"github.com/kmlvnk/ST-BookingService/internal/service/bookings"
	serviceModels "github.com/kmlvnk/ST-BookingService/internal/service/bookings/models"
	getAvailableSlots "github.com/kmlvnk/ST-BookingService/internal/usecase/get_available_slots"
)

// Методы фейков, нужные соседним компонентам в сквозном сценарии

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepoPkg.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepoPkg.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	b.UpdatedAt = now
	return nil
}

func (s *fakeReservationStore) Release(ctx context.Context, key domain.SlotKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reserved[key.String()]; !ok {
		return reservationRepoPkg.ErrNotReserved
	}
	delete(s.reserved, key.String())
	return nil
}

func (s *fakeReservationStore) ReservedLabels(ctx context.Context, date time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := date.Format(domain.DateFormat) + "-"
	labels := make([]string, 0)
	for key := range s.reserved {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			labels = append(labels, key[len(prefix):])
		}
	}
	return labels, nil
}

// Сквозной сценарий: бронирование занимает слот, проигравший получает отказ,
// доступность отражает занятость, отмена возвращает слот в выдачу
func TestBookingFlow(t *testing.T) {
	cat, err := catalog.New(config.BusinessConfig{
		Timezone:   "UTC",
		SlotLabels: []string{"10:00-13:00", "13:00-16:00"},
		Services: []config.ServiceConfig{
			{ID: 1, Name: "Консультация", Price: 1500, DurationMinutes: 180},
		},
	})
	require.NoError(t, err)

	bookingsRepo := newFakeBookingRepo()
	reservations := newFakeReservationStore()
	publisher := newFakePublisher()
	txManager := &fakeTxManager{bookings: bookingsRepo, reservations: reservations}

	createUC := NewUseCase(bookingsRepo, reservations, cat, publisher, txManager, stubLogger{})
	availabilityUC := getAvailableSlots.NewUseCase(reservations, cat, stubLogger{})
	lifecycle := bookings.NewService(bookingsRepo, reservations, publisher, txManager, stubLogger{})

	ctx := context.Background()
	date := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)

	// Клиент A занимает первый слот
	b1, err := createUC.Execute(ctx, &Request{
		Date:      date,
		SlotLabel: "10:00-13:00",
		ServiceID: 1,
		Customer:  domain.Customer{Name: "Клиент A", Email: "a@example.com", Contact: "+70000000001"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), b1.Status)
	publisher.waitForEvent(t)

	// Клиент B проигрывает гонку за тот же слот
	_, err = createUC.Execute(ctx, &Request{
		Date:      date,
		SlotLabel: "10:00-13:00",
		ServiceID: 1,
		Customer:  domain.Customer{Name: "Клиент B", Email: "b@example.com", Contact: "+70000000002"},
	})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// В доступности остался только второй слот
	avail, err := availabilityUC.Execute(ctx, &getAvailableSlots.Request{Date: date})
	require.NoError(t, err)
	assert.Equal(t, []string{"13:00-16:00"}, avail.Slots)

	// Отмена возвращает слот
	require.NoError(t, lifecycle.Cancel(ctx, b1.ID, &serviceModels.CancelBookingRequest{Reason: "передумал"}))
	publisher.waitForEvent(t)

	avail, err = availabilityUC.Execute(ctx, &getAvailableSlots.Request{Date: date})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00-13:00", "13:00-16:00"}, avail.Slots)

	// Отмененное бронирование остается в истории
	got, err := lifecycle.GetByID(ctx, b1.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
}
