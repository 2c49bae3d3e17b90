package models

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// BookingResponse бронирование в ответе сервиса
type BookingResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Guests    int       `json:"guests"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"-"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует доменную модель в модель ответа
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		Date:      b.Date,
		Time:      b.Time.String(),
		Guests:    b.Guests,
		Name:      b.Name,
		Contact:   b.Contact,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список, пустой список остается пустым (не nil)
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result}
}
