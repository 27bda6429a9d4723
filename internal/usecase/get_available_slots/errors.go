package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrStoreUnavailable возвращается при инфраструктурном сбое хранилища
	ErrStoreUnavailable = errors.New("get_available_slots: store unavailable")
)
