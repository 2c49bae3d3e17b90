package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TableBookingService/internal/service/bookings/models"
)

// Service сервис для чтения и удаления бронирований
type Service struct {
	bookingRepo BookingRepository
	metrics     BookingMetrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований. metrics может быть nil.
func NewService(
	bookingRepo BookingRepository,
	metrics BookingMetrics,
	logger Logger,
) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Service{
		bookingRepo: bookingRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// List возвращает все бронирования в порядке создания, без фильтров и пагинации
func (s *Service) List(ctx context.Context) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// Delete удаляет бронирование безвозвратно.
// Изменить бронирование можно только удалив и создав заново.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	s.logger.Info("Delete: deleting booking id=%s", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncBookingsDeleted()
	s.logger.Info("Delete: successfully deleted booking id=%s", id)
	return nil
}
