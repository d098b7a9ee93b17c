package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthKey identifies one calendar month on the report axis.
// Its canonical string form is "YYYY-M" (no zero padding), which is why keys
// must never be ordered by their string form: "2025-10" < "2025-2" as text.
type MonthKey struct {
	Year  int
	Month int
}

// NewMonthKey validates and builds a MonthKey.
func NewMonthKey(year, month int) (MonthKey, error) {
	if year <= 0 {
		return MonthKey{}, fmt.Errorf("invalid year %d", year)
	}
	if month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("invalid month %d", month)
	}
	return MonthKey{Year: year, Month: month}, nil
}

// MonthKeyOf returns the key of the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: int(t.Month())}
}

// ParseMonthKey parses the canonical "YYYY-M" form. A zero-padded month is accepted.
func ParseMonthKey(s string) (MonthKey, error) {
	yearPart, monthPart, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return MonthKey{}, fmt.Errorf("invalid month key %q", s)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	month, err := strconv.Atoi(monthPart)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return NewMonthKey(year, month)
}

func (k MonthKey) String() string {
	return strconv.Itoa(k.Year) + "-" + strconv.Itoa(k.Month)
}

// Compare orders keys by (year, month): -1, 0 or +1.
func (k MonthKey) Compare(other MonthKey) int {
	switch {
	case k.Year < other.Year:
		return -1
	case k.Year > other.Year:
		return 1
	case k.Month < other.Month:
		return -1
	case k.Month > other.Month:
		return 1
	}
	return 0
}

// Before reports whether k is strictly earlier than other.
func (k MonthKey) Before(other MonthKey) bool {
	return k.Compare(other) < 0
}

// Next returns the following calendar month.
func (k MonthKey) Next() MonthKey {
	if k.Month == 12 {
		return MonthKey{Year: k.Year + 1, Month: 1}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

// IsZero reports whether k is the zero value.
func (k MonthKey) IsZero() bool {
	return k.Year == 0 && k.Month == 0
}

// MonthRange returns every month from..to inclusive. It is empty when to is before from.
func MonthRange(from, to MonthKey) []MonthKey {
	if to.Before(from) {
		return nil
	}
	var keys []MonthKey
	for k := from; !to.Before(k); k = k.Next() {
		keys = append(keys, k)
	}
	return keys
}
