package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	// ListByDate получает все бронирования на конкретную дату
	ListByDate(ctx context.Context, date string) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
