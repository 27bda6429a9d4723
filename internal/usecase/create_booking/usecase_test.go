package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvnk/ST-BookingService/internal/catalog"
	"github.com/kmlvnk/ST-BookingService/internal/config"
	"github.com/kmlvnk/ST-BookingService/internal/domain"
	"github.com/kmlvnk/ST-BookingService/internal/infra/notify"
	reservationRepo "github.com/kmlvnk/ST-BookingService/internal/infra/storage/reservation"
)

// --- Фейки ---

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
	err      error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	stored := *booking
	stored.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stored.UpdatedAt = stored.CreatedAt
	r.bookings[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type fakeReservationStore struct {
	mu       sync.Mutex
	reserved map[string]string // slot key -> booking id
	err      error
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{reserved: make(map[string]string)}
}

func (s *fakeReservationStore) TryReserve(ctx context.Context, key domain.SlotKey, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, taken := s.reserved[key.String()]; taken {
		return reservationRepo.ErrAlreadyReserved
	}
	s.reserved[key.String()] = bookingID
	return nil
}

func (s *fakeReservationStore) holder(key domain.SlotKey) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.reserved[key.String()]
	return id, ok
}

// fakeTxManager выполняет fn без настоящей БД, но сохраняет транзакционную
// семантику: при ошибке откатывает изменения в фейковых хранилищах
type fakeTxManager struct {
	bookings     *fakeBookingRepo
	reservations *fakeReservationStore
	mu           sync.Mutex
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bookingsSnapshot := make(map[string]*domain.Booking, len(m.bookings.bookings))
	for k, v := range m.bookings.bookings {
		copied := *v
		bookingsSnapshot[k] = &copied
	}
	reservedSnapshot := make(map[string]string, len(m.reservations.reserved))
	for k, v := range m.reservations.reserved {
		reservedSnapshot[k] = v
	}

	if err := fn(ctx); err != nil {
		m.bookings.mu.Lock()
		m.bookings.bookings = bookingsSnapshot
		m.bookings.mu.Unlock()
		m.reservations.mu.Lock()
		m.reservations.reserved = reservedSnapshot
		m.reservations.mu.Unlock()
		return err
	}
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []notify.Event
	done   chan struct{}
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{done: make(chan struct{}, 64)}
}

func (p *fakePublisher) Publish(ctx context.Context, event notify.Event) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func (p *fakePublisher) waitForEvent(t *testing.T) notify.Event {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published event")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// failingTxManager не доходит до fn: транзакцию не удалось начать
type failingTxManager struct {
	err error
}

func (m *failingTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

// --- Окружение ---

func testBusinessConfig() config.BusinessConfig {
	return config.BusinessConfig{
		Timezone:   "UTC",
		SlotLabels: []string{"09:00", "10:00", "11:00", "14:00"},
		Services: []config.ServiceConfig{
			{ID: 1, Name: "Консультация", Price: 1500, DurationMinutes: 60},
			{ID: 2, Name: "Полный осмотр", Price: 3500, DurationMinutes: 60},
		},
	}
}

type testEnv struct {
	uc           *UseCase
	bookings     *fakeBookingRepo
	reservations *fakeReservationStore
	publisher    *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cat, err := catalog.New(testBusinessConfig())
	require.NoError(t, err)

	bookings := newFakeBookingRepo()
	reservations := newFakeReservationStore()
	publisher := newFakePublisher()
	txManager := &fakeTxManager{bookings: bookings, reservations: reservations}

	uc := NewUseCase(bookings, reservations, cat, publisher, txManager, stubLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}

	return &testEnv{
		uc:           uc,
		bookings:     bookings,
		reservations: reservations,
		publisher:    publisher,
	}
}

func validRequest() *Request {
	return &Request{
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		SlotLabel: "10:00",
		ServiceID: 1,
		Customer: domain.Customer{
			Name:    "Анна Петрова",
			Email:   "anna@example.com",
			Contact: "+79991234567",
		},
	}
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "10:00", resp.SlotLabel)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Консультация", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
	assert.Equal(t, 1, env.bookings.count())

	key := domain.NewSlotKey(resp.Date, resp.SlotLabel)
	holder, ok := env.reservations.holder(key)
	require.True(t, ok)
	assert.Equal(t, resp.ID, holder)

	event := env.publisher.waitForEvent(t)
	assert.Equal(t, notify.EventConfirmed, event.EventType)
	assert.Equal(t, resp.ID, event.BookingID)
}

func TestExecute_UnknownSlot(t *testing.T) {
	env := newTestEnv(t)
	req := validRequest()
	req.SlotLabel = "13:37"

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidSlot)
	assert.Equal(t, 0, env.bookings.count())
}

func TestExecute_PastDate(t *testing.T) {
	env := newTestEnv(t)
	req := validRequest()
	req.Date = time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPastDate)
	assert.Equal(t, 0, env.bookings.count())
}

func TestExecute_TodayIsBookable(t *testing.T) {
	env := newTestEnv(t)
	req := validRequest()
	req.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
}

func TestExecute_UnknownService(t *testing.T) {
	env := newTestEnv(t)
	req := validRequest()
	req.ServiceID = 404

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidService)
	assert.Equal(t, 0, env.bookings.count())
}

func TestExecute_InvalidCustomer(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *domain.Customer)
	}{
		{"empty name", func(c *domain.Customer) { c.Name = "   " }},
		{"empty email", func(c *domain.Customer) { c.Email = "" }},
		{"malformed email", func(c *domain.Customer) { c.Email = "not-an-email" }},
		{"empty contact", func(c *domain.Customer) { c.Contact = "" }},
		{"name too long", func(c *domain.Customer) {
			name := make([]byte, domain.MaxCustomerNameLength+1)
			for i := range name {
				name[i] = 'a'
			}
			c.Name = string(name)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			req := validRequest()
			tt.mutate(&req.Customer)

			_, err := env.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidCustomerInfo)
			assert.Equal(t, 0, env.bookings.count())
		})
	}
}

// Порядок валидации фиксирован: при нескольких ошибках сразу
// возвращается первая по порядку слот -> дата -> услуга
func TestExecute_ValidationOrder(t *testing.T) {
	env := newTestEnv(t)
	req := validRequest()
	req.SlotLabel = "13:37"
	req.Date = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	req.ServiceID = 404

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_SlotTaken(t *testing.T) {
	env := newTestEnv(t)
	req := validRequest()

	// Слот уже занят другим бронированием
	key := domain.NewSlotKey(req.Date, req.SlotLabel)
	require.NoError(t, env.reservations.TryReserve(context.Background(), key, "other-booking"))

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotTaken)

	// Проигранная гонка не оставляет следов: бронирование откатилось,
	// резервация осталась за победителем
	assert.Equal(t, 0, env.bookings.count())
	holder, ok := env.reservations.holder(key)
	require.True(t, ok)
	assert.Equal(t, "other-booking", holder)
	assert.Equal(t, 0, env.publisher.count())
}

func TestExecute_StoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.bookings.err = errors.New("connection refused")

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, 0, env.bookings.count())
	assert.Equal(t, 0, env.publisher.count())
}

// Ошибка вне таксономии хранилища (не удалось начать транзакцию)
// оборачивается в ErrInternal
func TestExecute_TxManagerFailure(t *testing.T) {
	cat, err := catalog.New(testBusinessConfig())
	require.NoError(t, err)

	txManager := &failingTxManager{err: errors.New("begin tx: driver down")}
	uc := NewUseCase(newFakeBookingRepo(), newFakeReservationStore(), cat, newFakePublisher(), txManager, stubLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}

	_, err = uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
}

// Из N конкурентных попыток занять один слот ровно одна выигрывает
func TestExecute_ConcurrentSameSlot(t *testing.T) {
	env := newTestEnv(t)

	const workers = 32
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			req := validRequest()
			req.Customer.Name = fmt.Sprintf("Клиент %d", n)
			_, err := env.uc.Execute(context.Background(), req)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotTaken):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, losses)
	assert.Equal(t, 1, env.bookings.count())
}

// Разные слоты не конкурируют между собой
func TestExecute_ConcurrentDifferentSlots(t *testing.T) {
	env := newTestEnv(t)

	labels := []string{"09:00", "10:00", "11:00", "14:00"}
	var wg sync.WaitGroup
	results := make(chan error, len(labels))

	for _, label := range labels {
		wg.Add(1)
		go func(label string) {
			defer wg.Done()
			req := validRequest()
			req.SlotLabel = label
			_, err := env.uc.Execute(context.Background(), req)
			results <- err
		}(label)
	}
	wg.Wait()
	close(results)

	for err := range results {
		assert.NoError(t, err)
	}
	assert.Equal(t, len(labels), env.bookings.count())
}
