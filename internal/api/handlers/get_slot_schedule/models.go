package get_slot_schedule

import (
	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// ScheduleResponse настройки каталога слотов, с которыми запущен сервис
type ScheduleResponse struct {
	OpenTime    string   `json:"openTime"`
	CloseTime   string   `json:"closeTime"`
	StepMinutes int      `json:"stepMinutes"`
	Slots       []string `json:"slots"`
}

// FromCatalog конвертирует каталог в HTTP ответ
func FromCatalog(schedule domain.SlotSchedule, slots []types.TimeString) *ScheduleResponse {
	labels := make([]string, 0, len(slots))
	for _, slot := range slots {
		labels = append(labels, slot.String())
	}

	return &ScheduleResponse{
		OpenTime:    schedule.OpenTime.String(),
		CloseTime:   schedule.CloseTime.String(),
		StepMinutes: schedule.StepMinutes,
		Slots:       labels,
	}
}
