package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DailySchedule is a time of day in the local zone.
type DailySchedule struct {
	Hour   int
	Minute int
}

// ParseDailySchedule reads the minute and hour fields of a cron expression
// such as "30 3 * * *". Day, month and weekday fields are ignored; a "*"
// keeps the default of 03:00.
func ParseDailySchedule(expr string) (DailySchedule, error) {
	s := DailySchedule{Hour: 3}
	parts := strings.Fields(expr)
	if len(parts) == 0 {
		return s, nil
	}
	if len(parts) < 2 {
		return s, fmt.Errorf("%w: %q needs minute and hour fields", ErrInvalidConfig, expr)
	}

	var err error
	if s.Minute, err = field(parts[0], 0, 59, 0); err != nil {
		return DailySchedule{Hour: 3}, fmt.Errorf("%w: minute: %v", ErrInvalidConfig, err)
	}
	if s.Hour, err = field(parts[1], 0, 23, 3); err != nil {
		return DailySchedule{Hour: 3}, fmt.Errorf("%w: hour: %v", ErrInvalidConfig, err)
	}
	return s, nil
}

func field(s string, lo, hi, def int) (int, error) {
	if s == "*" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%d out of range %d-%d", v, lo, hi)
	}
	return v, nil
}

// Next returns the first occurrence strictly after now.
func (s DailySchedule) Next(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.Hour, s.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s DailySchedule) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}
