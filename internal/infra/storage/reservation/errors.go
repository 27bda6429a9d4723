package reservation

import "errors"

var (
	// ErrAlreadyReserved возвращается, когда слот уже занят другим бронированием
	// Это штатный исход гонки за слот, а не инфраструктурная ошибка
	ErrAlreadyReserved = errors.New("reservation.repository: slot already reserved")

	// ErrNotReserved возвращается при попытке освободить свободный слот
	ErrNotReserved = errors.New("reservation.repository: slot is not reserved")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
