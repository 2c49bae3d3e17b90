package create_booking

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// validatedRequest запрос после нормализации и проверки
type validatedRequest struct {
	date    string
	time    types.TimeString
	guests  int
	name    string
	contact string
}

// normalizeRequest обрезает пробелы, строка из одних пробелов считается пустой
func normalizeRequest(req *Request) *Request {
	return &Request{
		Date:    strings.TrimSpace(req.Date),
		Time:    strings.TrimSpace(req.Time),
		Guests:  strings.TrimSpace(req.Guests),
		Name:    strings.TrimSpace(req.Name),
		Contact: strings.TrimSpace(req.Contact),
	}
}

// validateRequest проверяет наличие всех полей, затем формат каждого
func validateRequest(validate *validator.Validate, catalog *domain.SlotCatalog, req *Request) (*validatedRequest, error) {
	if req == nil {
		return nil, ErrInvalidInput
	}
	req = normalizeRequest(req)

	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidInput, missingFields(validationErrs))
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	guests, err := parseGuests(req.Guests)
	if err != nil {
		return nil, err
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return nil, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, req.Date)
	}

	slot, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if !catalog.Contains(slot) {
		return nil, fmt.Errorf("%w: %s is not in the slot catalog", ErrInvalidTimeSlot, slot)
	}

	return &validatedRequest{
		date:    req.Date,
		time:    slot,
		guests:  guests,
		name:    req.Name,
		contact: req.Contact,
	}, nil
}

// parseGuests принимает любое конечное целое значение >= domain.MinGuests,
// в том числе записанное как число JSON с дробной частью или экспонентой ("2.0", "2e0")
func parseGuests(raw string) (int, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidGuests, raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidGuests, raw)
	}
	if value < domain.MinGuests || value > math.MaxInt32 {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidGuests, raw)
	}
	return int(value), nil
}

func missingFields(errs validator.ValidationErrors) string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, strings.ToLower(e.Field()))
	}
	return strings.Join(fields, ", ")
}
