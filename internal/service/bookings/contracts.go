package bookings

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// BookingMetrics бизнес-метрики (опционально)
type BookingMetrics interface {
	IncBookingsDeleted()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopMetrics struct{}

func (noopMetrics) IncBookingsDeleted() {}
