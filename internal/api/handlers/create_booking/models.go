package create_booking

import (
	"bytes"
	"encoding/json"

	createBooking "github.com/m04kA/SMC-TableBookingService/internal/usecase/create_booking"
)

// GuestsValue количество гостей в теле запроса: число (2) или строка ("2").
// Проверку значения выполняет use case.
type GuestsValue string

// UnmarshalJSON принимает любой JSON-литерал и сохраняет его текст
func (g *GuestsValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*g = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = GuestsValue(s)
		return nil
	}

	*g = GuestsValue(data)
	return nil
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date    string      `json:"date"` // "2024-01-01"
	Time    string      `json:"time"` // "10:00"
	Guests  GuestsValue `json:"guests"`
	Name    string      `json:"name"`
	Contact string      `json:"contact"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Guests  int    `json:"guests"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		Date:    r.Date,
		Time:    r.Time,
		Guests:  string(r.Guests),
		Name:    r.Name,
		Contact: r.Contact,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:      resp.ID,
		Date:    resp.Date,
		Time:    resp.Time.String(),
		Guests:  resp.Guests,
		Name:    resp.Name,
		Contact: resp.Contact,
	}
}
