package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-TableBookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate = "Date is required."
	msgInvalidDate = "Date must be in YYYY-MM-DD format."
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(dateStr))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrDateRequired):
			h.logger.Warn("GET /available-slots - Missing date")
			handlers.RespondBadRequest(w, msgMissingDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved successfully: date=%s, slots_count=%d",
		result.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
