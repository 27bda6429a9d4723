package create_booking

import "errors"

var (
	// ErrInvalidSlot возвращается, когда метки слота нет в каталоге
	ErrInvalidSlot = errors.New("create_booking: unknown slot label")

	// ErrPastDate возвращается при попытке бронирования на прошедшую дату
	ErrPastDate = errors.New("create_booking: date is in the past")

	// ErrInvalidService возвращается, когда услуга не найдена в каталоге
	ErrInvalidService = errors.New("create_booking: unknown service")

	// ErrInvalidCustomerInfo возвращается при пустых или некорректных данных клиента
	ErrInvalidCustomerInfo = errors.New("create_booking: invalid customer info")

	// ErrSlotTaken возвращается, когда слот занят другим бронированием
	// Это проигрыш честной гонки: клиенту предлагается выбрать другой слот,
	// автоматический повтор с тем же слотом не имеет смысла
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrStoreUnavailable возвращается при инфраструктурном сбое хранилища
	// Вызывающий может повторить весь вызов целиком (с полной ревалидацией)
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")

	// ErrInternal возвращается при прочих внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
