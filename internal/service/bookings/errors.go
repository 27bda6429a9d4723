package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене бронирования
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInconsistentState возвращается, когда записи бронирований и
	// хранилище занятости разошлись (например, подтвержденное бронирование
	// держит слот, которого нет в резервациях). Это нарушение инварианта,
	// а не пользовательская ошибка: транзакция откатывается, инцидент
	// требует внимания оператора
	ErrInconsistentState = errors.New("booking and reservation records diverged")

	// ErrStoreUnavailable возвращается при инфраструктурном сбое хранилища
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInternal возвращается при прочих внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
