package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
// Slots перечислены в порядке каталога; занятые слоты исключены
type Response struct {
	Date  time.Time // Дата, на которую запрашивались слоты
	Slots []string  // Метки свободных слотов
}
