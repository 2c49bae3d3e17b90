package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// ErrInvalidSchedule is returned for opening hours that cannot produce a catalog
var ErrInvalidSchedule = errors.New("domain: invalid slot schedule")

// SlotSchedule describes the restaurant's opening hours used to build the slot catalog.
// Every slot must end no later than CloseTime.
type SlotSchedule struct {
	OpenTime    types.TimeString
	CloseTime   types.TimeString
	StepMinutes int
}

// DefaultSlotSchedule returns the 10:00-18:00 hourly schedule
func DefaultSlotSchedule() SlotSchedule {
	return SlotSchedule{
		OpenTime:    types.MustTimeString(DefaultOpenTime),
		CloseTime:   types.MustTimeString(DefaultCloseTime),
		StepMinutes: DefaultStepMinutes,
	}
}

// Validate checks the schedule bounds
func (s SlotSchedule) Validate() error {
	if err := s.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidSchedule, err)
	}
	if err := s.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidSchedule, err)
	}
	if !s.OpenTime.IsBefore(s.CloseTime) {
		return fmt.Errorf("%w: open time %s must be before close time %s", ErrInvalidSchedule, s.OpenTime, s.CloseTime)
	}
	if s.StepMinutes < MinStepMinutes || s.StepMinutes > MaxStepMinutes {
		return fmt.Errorf("%w: step must be between %d and %d minutes", ErrInvalidSchedule, MinStepMinutes, MaxStepMinutes)
	}
	return nil
}
