package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// MemoryRepository хранилище бронирований в памяти процесса.
// Данные живут до перезапуска, порядок списка - порядок добавления.
type MemoryRepository struct {
	mu       sync.RWMutex
	bookings []*domain.Booking
	now      func() time.Time
	newID    func() string
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		bookings: make([]*domain.Booking, 0),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create добавляет бронирование в конец списка и назначает идентификатор.
// Повторная проверка занятости слота выполняется под записывающей блокировкой.
func (r *MemoryRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.Occupies(booking.Date, booking.Time) {
			return nil, ErrSlotTaken
		}
	}

	stored := *booking
	stored.ID = r.newID()
	stored.CreatedAt = r.now()
	r.bookings = append(r.bookings, &stored)

	created := stored
	return &created, nil
}

// GetByID получает бронирование по ID
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.ID == id {
			found := *b
			return &found, nil
		}
	}
	return nil, ErrBookingNotFound
}

// List возвращает копии всех бронирований в порядке добавления
func (r *MemoryRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyBookings(r.bookings, func(*domain.Booking) bool { return true }), nil
}

// ListByDate возвращает бронирования на указанную дату
func (r *MemoryRepository) ListByDate(ctx context.Context, date string) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyBookings(r.bookings, func(b *domain.Booking) bool { return b.Date == date }), nil
}

// Delete удаляет бронирование без возможности восстановления
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return ErrBookingNotFound
}

func copyBookings(src []*domain.Booking, keep func(*domain.Booking) bool) []*domain.Booking {
	out := make([]*domain.Booking, 0, len(src))
	for _, b := range src {
		if keep(b) {
			c := *b
			out = append(out, &c)
		}
	}
	return out
}
