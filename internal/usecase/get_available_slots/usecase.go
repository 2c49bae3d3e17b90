package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	bookingRepo BookingRepository
	catalog     *domain.SlotCatalog
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog *domain.SlotCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalog:     catalog,
		logger:      logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Результат может устареть сразу после ответа: слот не резервируется,
// окончательную проверку делает создание бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронирования на эту дату
	bookings, err := uc.bookingRepo.ListByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 3. Каталог минус занятые слоты
	slots := availableSlots(uc.catalog.Slots(), bookings, date)

	uc.logger.Info("GetAvailableSlots: date=%s, %d/%d slots available", date, len(slots), uc.catalog.Len())

	return &Response{
		Date:  date,
		Slots: slots,
	}, nil
}
