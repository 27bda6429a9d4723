package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
	"github.com/kmlvnk/ST-BookingService/pkg/dbmetrics"
	"github.com/kmlvnk/ST-BookingService/pkg/psqlbuilder"
)

// Repository хранилище занятости слотов - единственный источник правды
// о том, какие (дата, слот) пары заняты.
//
// Таблица slot_reservations имеет уникальный индекс по (booking_date, slot_label),
// поэтому TryReserve атомарен: из двух конкурентных вставок на один слот
// ровно одна проходит, вторая получает ErrAlreadyReserved без мутации.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр хранилища занятости слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// TryReserve атомарно занимает слот для бронирования
// Возвращает ErrAlreadyReserved, если слот уже занят; повторные попытки
// и разрешение конфликтов - ответственность вызывающего
func (r *Repository) TryReserve(ctx context.Context, key domain.SlotKey, bookingID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_reservations").
		Columns("booking_date", "slot_label", "booking_id").
		Values(key.Date.Format(domain.DateFormat), key.Label, bookingID).
		Suffix("ON CONFLICT (booking_date, slot_label) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: TryReserve - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TryReserve - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TryReserve - get rows affected: %v", ErrExecQuery, err)
	}

	// ON CONFLICT DO NOTHING: 0 строк означает, что слот занял кто-то другой
	if rowsAffected == 0 {
		return ErrAlreadyReserved
	}

	return nil
}

// Release освобождает слот
// Возвращает ErrNotReserved, если слот и так свободен - вызывающий решает,
// является ли это нарушением инварианта
func (r *Repository) Release(ctx context.Context, key domain.SlotKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_reservations").
		Where(squirrel.Eq{
			"booking_date": key.Date.Format(domain.DateFormat),
			"slot_label":   key.Label,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotReserved
	}

	return nil
}

// IsFree проверяет, свободен ли слот
// Ответ может устареть к моменту следующего TryReserve - финальным арбитром
// всегда остается TryReserve, а не этот метод
func (r *Repository) IsFree(ctx context.Context, key domain.SlotKey) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("slot_reservations").
		Where(squirrel.Eq{
			"booking_date": key.Date.Format(domain.DateFormat),
			"slot_label":   key.Label,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsFree - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsFree - scan: %v", ErrScanRow, err)
	}

	return false, nil
}

// ReservedLabels возвращает метки всех занятых слотов на указанную дату
// Используется резолвером доступности: один запрос вместо запроса на слот
func (r *Repository) ReservedLabels(ctx context.Context, date time.Time) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_label").
		From("slot_reservations").
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		OrderBy("slot_label ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReservedLabels - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReservedLabels - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	labels := make([]string, 0)
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("%w: ReservedLabels - scan label: %v", ErrScanRow, err)
		}
		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReservedLabels - rows error: %v", ErrScanRow, err)
	}

	return labels, nil
}

// ListReserved возвращает все текущие резервации, упорядоченные по дате и слоту
func (r *Repository) ListReserved(ctx context.Context) ([]domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_date", "slot_label", "booking_id", "created_at").
		From("slot_reservations").
		OrderBy("booking_date ASC, slot_label ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListReserved - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListReserved - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		var (
			date      time.Time
			label     string
			bookingID string
			createdAt sql.NullTime
		)
		if err := rows.Scan(&date, &label, &bookingID, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListReserved - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, domain.Reservation{
			SlotKey:   domain.NewSlotKey(date, label),
			BookingID: bookingID,
			CreatedAt: createdAt.Time,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListReserved - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
