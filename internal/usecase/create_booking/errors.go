package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается, когда не заполнено одно из обязательных полей
	ErrInvalidInput = errors.New("create_booking: all fields are required")

	// ErrInvalidGuests возвращается, когда количество гостей не целое положительное число
	ErrInvalidGuests = errors.New("create_booking: guests must be a positive number")

	// ErrInvalidDate возвращается при дате не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время не входит в каталог слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда слот на эту дату уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
