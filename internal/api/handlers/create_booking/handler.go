package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-TableBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body."
	msgAllFieldsRequired  = "All fields are required."
	msgInvalidGuests      = "Guests must be a positive number."
	msgInvalidDate        = "Date must be in YYYY-MM-DD format."
	msgInvalidTimeSlot    = "Time must be one of the available slots."
	msgSlotNotAvailable   = "This slot is already booked."
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, handlers.ErrEmptyBody) {
			h.logger.Warn("POST /bookings - Empty request body")
			handlers.RespondBadRequest(w, msgAllFieldsRequired)
			return
		}
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		// Все ошибки клиента отдаются как 400 с текстом для формы
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Missing fields: %v", err)
			handlers.RespondBadRequest(w, msgAllFieldsRequired)

		case errors.Is(err, createBooking.ErrInvalidGuests):
			h.logger.Warn("POST /bookings - Invalid guests: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGuests)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, date=%s, time=%s",
		result.ID, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
