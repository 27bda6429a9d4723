package catalog

import "errors"

var (
	// ErrEmptyCatalog возвращается, когда в конфигурации нет ни одного слота
	ErrEmptyCatalog = errors.New("catalog: slot catalog must not be empty")

	// ErrDuplicateLabel возвращается при дублировании меток слотов
	ErrDuplicateLabel = errors.New("catalog: duplicate slot label")

	// ErrEmptyLabel возвращается при пустой метке слота
	ErrEmptyLabel = errors.New("catalog: empty slot label")

	// ErrInvalidTimezone возвращается при некорректной таймзоне бизнеса
	ErrInvalidTimezone = errors.New("catalog: invalid business timezone")

	// ErrDuplicateService возвращается при дублировании ID услуг
	ErrDuplicateService = errors.New("catalog: duplicate service id")
)
