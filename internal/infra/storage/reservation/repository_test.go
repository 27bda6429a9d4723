package reservation

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
)

func testSlotKey() domain.SlotKey {
	return domain.NewSlotKey(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "10:00")
}

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestTryReserve_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO slot_reservations")).
		WithArgs("2025-06-10", "10:00", "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.TryReserve(context.Background(), testSlotKey(), "b-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ON CONFLICT DO NOTHING: ноль затронутых строк - проигрыш гонки
func TestTryReserve_Conflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO slot_reservations")).
		WithArgs("2025-06-10", "10:00", "b-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.TryReserve(context.Background(), testSlotKey(), "b-2")

	assert.ErrorIs(t, err, ErrAlreadyReserved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelease_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM slot_reservations")).
		WithArgs("2025-06-10", "10:00").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Release(context.Background(), testSlotKey())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelease_NotReserved(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM slot_reservations")).
		WithArgs("2025-06-10", "10:00").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Release(context.Background(), testSlotKey())

	assert.ErrorIs(t, err, ErrNotReserved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsFree_NoReservation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM slot_reservations")).
		WithArgs("2025-06-10", "10:00").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	free, err := repo.IsFree(context.Background(), testSlotKey())

	require.NoError(t, err)
	assert.True(t, free)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsFree_Reserved(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM slot_reservations")).
		WithArgs("2025-06-10", "10:00").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	free, err := repo.IsFree(context.Background(), testSlotKey())

	require.NoError(t, err)
	assert.False(t, free)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Проигранный TryReserve не меняет занятость: IsFree до и после
// конфликтной вставки отвечает одинаково
func TestIsFree_UnchangedAfterConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	key := testSlotKey()

	taken := func() {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM slot_reservations")).
			WithArgs("2025-06-10", "10:00").
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	}

	taken()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO slot_reservations")).
		WithArgs("2025-06-10", "10:00", "b-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	taken()

	free, err := repo.IsFree(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, free)

	assert.ErrorIs(t, repo.TryReserve(context.Background(), key, "b-2"), ErrAlreadyReserved)

	free, err = repo.IsFree(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, free)

	assert.NoError(t, mock.ExpectationsWereMet())
}
