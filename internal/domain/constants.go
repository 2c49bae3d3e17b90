package domain

// Default slot catalog bounds: hourly slots from 10:00, the last one starting at 17:00
const (
	DefaultOpenTime    = "10:00"
	DefaultCloseTime   = "18:00"
	DefaultStepMinutes = 60
)

// Business validation constants
const (
	MinGuests      = 1
	MinStepMinutes = 5
	MaxStepMinutes = 480 // 8 hours
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
