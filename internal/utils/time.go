package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/momentum/internal/constants"
)

// Clock supplies the current time. Tests substitute a FixedClock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a configured location
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// NewSystemClock returns a SystemClock for the given IANA timezone name.
func NewSystemClock(timezone string) (SystemClock, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return SystemClock{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return SystemClock{Location: loc}, nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// DayName maps t's weekday onto the fixed day name list (0 = Sunday).
func DayName(t time.Time) string {
	return constants.DayNames[int(t.Weekday())]
}

// Today returns the day name for the clock's current date
func Today(c Clock) string {
	return DayName(c.Now())
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidTime reports whether s is a 24-hour HH:MM string
func ValidTime(s string) bool {
	if len(s) != len(constants.TimeFormat) {
		return false
	}
	_, err := ParseTime(s)
	return err == nil
}

// FormatHour renders an hour as HH:00
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ParseDay resolves user input such as "mon", "monday" or "1" to a day name.
// Unresolvable input is returned unchanged so callers can pass it through.
func ParseDay(s string) string {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	for i, day := range constants.DayNames {
		name := strings.ToLower(day)
		if lower == name || lower == name[:3] || lower == fmt.Sprint(i) {
			return day
		}
	}
	return trimmed
}
