package notify

import "errors"

var (
	// ErrConnect возвращается при ошибке подключения к брокеру
	ErrConnect = errors.New("notify.publisher: failed to connect to broker")

	// ErrDeclare возвращается при ошибке объявления очереди
	ErrDeclare = errors.New("notify.publisher: failed to declare queue")

	// ErrPublish возвращается при ошибке публикации события
	// Публикация best-effort: эта ошибка логируется и никогда
	// не откатывает зафиксированное бронирование
	ErrPublish = errors.New("notify.publisher: failed to publish event")
)
