package health

import (
	"net/http"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
)

const msgRunning = "App is running"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle GET /
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondText(w, http.StatusOK, msgRunning)
}
