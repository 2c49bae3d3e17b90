package create_booking

import (
	"context"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByDate(ctx context.Context, date string) ([]*domain.Booking, error)
}

// TransactionManager сериализует проверку слота и вставку
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookingMetrics бизнес-метрики (опционально)
type BookingMetrics interface {
	IncBookingsCreated()
	IncSlotConflicts()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopMetrics struct{}

func (noopMetrics) IncBookingsCreated() {}
func (noopMetrics) IncSlotConflicts()   {}
