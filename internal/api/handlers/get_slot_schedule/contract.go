package get_slot_schedule

import (
	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// SlotCatalog каталог слотов процесса
type SlotCatalog interface {
	Schedule() domain.SlotSchedule
	Slots() []types.TimeString
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
