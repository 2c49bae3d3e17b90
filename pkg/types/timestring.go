package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeString is returned when a value is not a valid "HH:MM" label
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic leaves the 00:00-24:00 range
	ErrTimeOverflow = errors.New("time string out of day range")
)

const minutesPerDay = 24 * 60

// TimeString is a time of day in "HH:MM" form without a date or zone.
// The zero value is the empty string.
type TimeString string

// NewTimeString builds a TimeString from the clock part of t
func NewTimeString(t time.Time) TimeString {
	return fromMinutes(t.Hour()*60 + t.Minute())
}

// NewTimeStringFromString parses "HH:MM" (also accepts "HH:MM:SS" as returned by postgres TIME columns)
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	if len(parts[0]) != 2 || len(parts[1]) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 24 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	// 24:00 допустим только как граница конца дня
	if hour == 24 && minute != 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return fromMinutes(hour*60 + minute), nil
}

// MustTimeString parses s and panics on error. Intended for constants and tests.
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the "HH:MM" form
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is unset
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks that the value is a well-formed "HH:MM" label
func (t TimeString) Validate() error {
	_, err := NewTimeStringFromString(string(t))
	return err
}

// Minutes returns minutes since midnight
func (t TimeString) Minutes() (int, error) {
	parsed, err := NewTimeStringFromString(string(t))
	if err != nil {
		return 0, err
	}

	hour, _ := strconv.Atoi(string(parsed)[:2])
	minute, _ := strconv.Atoi(string(parsed)[3:])
	return hour*60 + minute, nil
}

// AddMinutes shifts the time by n minutes. 24:00 is allowed as an end boundary.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total := m + n
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min", ErrTimeOverflow, t, n)
	}

	return fromMinutes(total), nil
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.compare(other) < 0
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.compare(other) > 0
}

// Equal reports whether both values denote the same time of day
func (t TimeString) Equal(other TimeString) bool {
	return t.compare(other) == 0
}

func (t TimeString) compare(other TimeString) int {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return strings.Compare(string(t), string(other))
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan implements sql.Scanner for TIME / TEXT columns
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func fromMinutes(total int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}
