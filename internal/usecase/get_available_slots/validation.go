package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// validateRequest проверяет наличие и формат даты
func validateRequest(req *Request) (string, error) {
	if req == nil {
		return "", ErrDateRequired
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		return "", ErrDateRequired
	}

	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return "", fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, date)
	}

	return date, nil
}
