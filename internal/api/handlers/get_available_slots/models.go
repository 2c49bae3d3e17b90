package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-TableBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model: массив меток времени, например ["11:00", "12:00"]
type AvailableSlotsResponse []string

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) AvailableSlotsResponse {
	slots := make(AvailableSlotsResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}
	return slots
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(date string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{Date: date}
}
