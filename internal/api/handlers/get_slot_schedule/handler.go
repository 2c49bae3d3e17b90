package get_slot_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
)

type Handler struct {
	catalog SlotCatalog
	logger  Logger
}

func NewHandler(catalog SlotCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/slots
// Каталог одинаков для всех дат и не меняется до перезапуска
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slots := h.catalog.Slots()

	h.logger.Info("GET /slots - Slot schedule retrieved: count=%d", len(slots))
	handlers.RespondJSON(w, http.StatusOK, FromCatalog(h.catalog.Schedule(), slots))
}
