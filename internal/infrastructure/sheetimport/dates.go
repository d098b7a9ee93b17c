package sheetimport

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date cell matches no known representation
var ErrInvalidDate = errors.New("invalid date")

// excelEpoch is day zero of the 1900 date system as Excel counts it.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2-Jan-2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ExcelSerialToTime converts an Excel serial; the fraction is the time of day.
func ExcelSerialToTime(serial float64) time.Time {
	days := math.Floor(serial)
	ms := math.Round((serial - days) * 24 * 60 * 60 * 1000)
	return excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(ms) * time.Millisecond)
}

// ParseDate returns nil for a blank cell. Numeric text is an Excel serial.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial <= 0 || math.IsInf(serial, 0) || math.IsNaN(serial) {
			return nil, ErrInvalidDate
		}
		t := ExcelSerialToTime(serial)
		return &t, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, ErrInvalidDate
}
