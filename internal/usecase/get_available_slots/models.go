package get_available_slots

import "github.com/m04kA/SMC-TableBookingService/pkg/types"

// Request модель запроса на получение свободных слотов
type Request struct {
	Date string // YYYY-MM-DD
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date  string             // Дата, на которую запрашивались слоты
	Slots []types.TimeString // Свободные слоты в порядке каталога
}
