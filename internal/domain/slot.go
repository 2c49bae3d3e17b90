package domain

import "github.com/m04kA/SMC-TableBookingService/pkg/types"

// SlotCatalog is the fixed ordered list of bookable time labels, the same for every date
type SlotCatalog struct {
	schedule SlotSchedule
	slots    []types.TimeString
}

// NewSlotCatalog generates slots from the opening time with a fixed step.
// A slot is included only if it ends by the closing time.
func NewSlotCatalog(schedule SlotSchedule) (*SlotCatalog, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)
	current := schedule.OpenTime

	for current.IsBefore(schedule.CloseTime) {
		slotEnd, err := current.AddMinutes(schedule.StepMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(schedule.CloseTime) {
			break
		}

		slots = append(slots, current)
		current = slotEnd
	}

	return &SlotCatalog{schedule: schedule, slots: slots}, nil
}

// DefaultSlotCatalog returns the eight hourly slots 10:00..17:00
func DefaultSlotCatalog() *SlotCatalog {
	catalog, err := NewSlotCatalog(DefaultSlotSchedule())
	if err != nil {
		panic(err)
	}
	return catalog
}

// Schedule returns the bounds the catalog was generated from
func (c *SlotCatalog) Schedule() SlotSchedule {
	return c.schedule
}

// Slots returns a copy of the catalog in order
func (c *SlotCatalog) Slots() []types.TimeString {
	out := make([]types.TimeString, len(c.slots))
	copy(out, c.slots)
	return out
}

// Contains returns true if the label is part of the catalog
func (c *SlotCatalog) Contains(slot types.TimeString) bool {
	for _, s := range c.slots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}

// Len returns the number of slots per day
func (c *SlotCatalog) Len() int {
	return len(c.slots)
}
