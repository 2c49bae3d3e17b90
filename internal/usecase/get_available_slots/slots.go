package get_available_slots

import (
	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// availableSlots возвращает слоты каталога, не занятые бронированиями на дату.
// Порядок каталога сохраняется.
func availableSlots(catalog []types.TimeString, bookings []*domain.Booking, date string) []types.TimeString {
	taken := domain.TakenSlots(bookings, date)

	free := make([]types.TimeString, 0, len(catalog))
	for _, slot := range catalog {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free
}
