package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewColumnModel_SortsChronologically(t *testing.T) {
	keys := []MonthKey{{2025, 10}, {2025, 2}, {2024, 12}, {2025, 1}, {2024, 11}, {2025, 2}}

	cm := NewColumnModel(keys, DefaultMonthNames())

	var got []string
	for _, k := range cm.Keys() {
		got = append(got, k.String())
	}
	assert.Equal(t, []string{"2024-11", "2024-12", "2025-1", "2025-2", "2025-10"}, got)
	assert.Equal(t, 5, cm.Len())
}

func TestColumnModel_Labels(t *testing.T) {
	t.Run("uses the first three letters of the month name", func(t *testing.T) {
		cm := NewColumnModel([]MonthKey{{2024, 1}, {2024, 9}}, DefaultMonthNames())
		assert.Equal(t, []string{"2024/Jan", "2024/Sep"}, cm.Labels())
	})

	t.Run("unknown month falls back to numeric id", func(t *testing.T) {
		names := MonthNameLookup{1: "January"}
		cm := NewColumnModel([]MonthKey{{2024, 1}, {2024, 2}}, names)
		assert.Equal(t, []string{"2024/Jan", "2024/2"}, cm.Labels())
	})

	t.Run("empty lookup degrades every label", func(t *testing.T) {
		cm := NewColumnModel([]MonthKey{{2024, 3}}, nil)
		assert.Equal(t, []string{"2024/3"}, cm.Labels())
	})

	t.Run("short names are kept whole", func(t *testing.T) {
		assert.Equal(t, "2024/Ma", MonthNameLookup{5: "Ma"}.Label(MonthKey{2024, 5}))
	})
}

func TestColumnModelFromRecords(t *testing.T) {
	records := []TransactionRecord{
		{Year: 2024, Month: 2},
		{Year: 2024, Month: 1},
		{Year: 2024, Month: 2},
		{Year: 2024, Month: 0},
	}

	cm := ColumnModelFromRecords(records, DefaultMonthNames())

	assert.Equal(t, []MonthKey{{2024, 1}, {2024, 2}}, cm.Keys())
	assert.False(t, cm.Contains(MonthKey{2024, 0}))
}

func TestColumnModel_Extend(t *testing.T) {
	cm := NewColumnModel([]MonthKey{{2024, 3}}, DefaultMonthNames())

	extended := cm.Extend(MonthKey{2024, 1}, MonthKey{2024, 4}, DefaultMonthNames())

	assert.Equal(t, []MonthKey{{2024, 1}, {2024, 2}, {2024, 3}, {2024, 4}}, extended.Keys())
	assert.Equal(t, 1, cm.Len(), "original model is untouched")
}
