package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/booking"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	catalog     *domain.SlotCatalog
	txManager   TransactionManager
	metrics     BookingMetrics
	validate    *validator.Validate
	logger      Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	catalog *domain.SlotCatalog,
	txManager TransactionManager,
	metrics BookingMetrics,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &UseCase{
		bookingRepo: bookingRepo,
		catalog:     catalog,
		txManager:   txManager,
		metrics:     metrics,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости слота и вставка идут в одной сериализуемой секции,
// поэтому два параллельных запроса на один слот не могут пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	valid, err := validateRequest(uc.validate, uc.catalog, req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: date=%s, time=%s, guests=%d", valid.date, valid.time, valid.guests)

	var result *domain.Booking

	// 2. Проверка слота и вставка в сериализуемой секции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Бронирования на эту дату (в postgres - с блокировкой строк)
		bookings, err := uc.bookingRepo.ListByDate(txCtx, valid.date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for date=%s: %v", valid.date, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 2.2. Слот уже занят
		if _, taken := domain.TakenSlots(bookings, valid.date)[valid.time]; taken {
			uc.logger.Warn("CreateBooking: slot date=%s, time=%s is already booked", valid.date, valid.time)
			return ErrSlotNotAvailable
		}

		// 2.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			Date:    valid.date,
			Time:    valid.time,
			Guests:  valid.guests,
			Name:    valid.name,
			Contact: valid.contact,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot date=%s, time=%s taken concurrently", valid.date, valid.time)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.IncSlotConflicts()
			return nil, err
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	uc.metrics.IncBookingsCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{
		ID:        result.ID,
		Date:      result.Date,
		Time:      result.Time,
		Guests:    result.Guests,
		Name:      result.Name,
		Contact:   result.Contact,
		CreatedAt: result.CreatedAt,
	}, nil
}
