package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// Request модель запроса на создание бронирования.
// Guests приходит текстом: форма в браузере присылает строку, API-клиенты - число.
type Request struct {
	Date    string `validate:"required"` // "2024-01-01"
	Time    string `validate:"required"` // "10:00"
	Guests  string `validate:"required"`
	Name    string `validate:"required"`
	Contact string `validate:"required"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        string
	Date      string
	Time      types.TimeString
	Guests    int
	Name      string
	Contact   string
	CreatedAt time.Time
}
