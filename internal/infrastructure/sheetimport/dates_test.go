package sheetimport

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestExcelSerialToTime(t *testing.T) {
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ExcelSerialToTime(45292))
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), ExcelSerialToTime(45292.5))
	assert.Equal(t, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), ExcelSerialToTime(2))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"serial", "45306", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"iso", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"slashes", "2024/01/15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"us", "01/15/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"short month", "15-Jan-2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2024-01-15T10:00:00Z", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	t.Run("blank is null", func(t *testing.T) {
		got, err := ParseDate("  ")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseDate("yesterday")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("negative serial", func(t *testing.T) {
		_, err := ParseDate("-3")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestParseDecimal(t *testing.T) {
	v, err := ParseDecimal("")
	require.NoError(t, err)
	assert.False(t, v.Valid)

	v, err = ParseDecimal(" 12.50 ")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.True(t, v.Decimal.Equal(mustDecimal(t, "12.5")))

	_, err = ParseDecimal("12a")
	assert.Error(t, err)
}

func TestErrorCollection(t *testing.T) {
	ec := NewErrorCollection(1)
	assert.Equal(t, "no errors", ec.String())

	ec.Add(NewRowError(2, ColDate, ErrCodeImportInvalidDate, "invalid date", "x"))
	ec.Add(NewRowError(3, "", ErrCodeImportInvalidType, "bad", ""))

	assert.Len(t, ec.Errors(), 1)
	assert.Equal(t, 2, ec.TotalCount())
	assert.True(t, ec.IsTruncated())
	assert.Contains(t, ec.String(), "row 2, column 'Date': invalid date")
	assert.Equal(t, "row 3: bad", NewRowError(3, "", "", "bad", "").Error())
}
