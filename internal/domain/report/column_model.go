package report

import (
	"slices"
	"strconv"
)

// MonthNameLookup maps a month number (1-12) to its display name.
type MonthNameLookup map[int]string

// DefaultMonthNames is the lookup used when the months reference table is unavailable.
func DefaultMonthNames() MonthNameLookup {
	return MonthNameLookup{
		1: "January", 2: "February", 3: "March", 4: "April",
		5: "May", 6: "June", 7: "July", 8: "August",
		9: "September", 10: "October", 11: "November", 12: "December",
	}
}

// Label renders "<year>/<first three letters of the month name>".
// An unknown month falls back to its numeric id.
func (l MonthNameLookup) Label(k MonthKey) string {
	name, ok := l[k.Month]
	if !ok || name == "" {
		return strconv.Itoa(k.Year) + "/" + strconv.Itoa(k.Month)
	}
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strconv.Itoa(k.Year) + "/" + string(runes)
}

// ColumnModel is the ordered, de-duplicated set of month columns of a report.
type ColumnModel struct {
	keys   []MonthKey
	labels []string
	index  map[MonthKey]int
}

// NewColumnModel sorts keys chronologically, drops duplicates and labels them.
func NewColumnModel(keys []MonthKey, names MonthNameLookup) *ColumnModel {
	sorted := slices.Clone(keys)
	slices.SortFunc(sorted, MonthKey.Compare)
	sorted = slices.Compact(sorted)

	cm := &ColumnModel{
		keys:   sorted,
		labels: make([]string, len(sorted)),
		index:  make(map[MonthKey]int, len(sorted)),
	}
	for i, k := range sorted {
		cm.labels[i] = names.Label(k)
		cm.index[k] = i
	}
	return cm
}

// ColumnModelFromRecords derives the axis from the months present in records.
func ColumnModelFromRecords(records []TransactionRecord, names MonthNameLookup) *ColumnModel {
	keys := make([]MonthKey, 0, len(records))
	for _, r := range records {
		if _, err := NewMonthKey(r.Year, r.Month); err != nil {
			continue
		}
		keys = append(keys, r.MonthKey())
	}
	return NewColumnModel(keys, names)
}

// Extend returns a model that additionally covers every month in from..to.
func (c *ColumnModel) Extend(from, to MonthKey, names MonthNameLookup) *ColumnModel {
	return NewColumnModel(append(c.Keys(), MonthRange(from, to)...), names)
}

// Keys returns a copy of the ordered month keys.
func (c *ColumnModel) Keys() []MonthKey {
	return slices.Clone(c.keys)
}

// Labels returns a copy of the display labels, aligned with Keys.
func (c *ColumnModel) Labels() []string {
	return slices.Clone(c.labels)
}

func (c *ColumnModel) Len() int {
	return len(c.keys)
}

// Contains reports whether k is a column of the model.
func (c *ColumnModel) Contains(k MonthKey) bool {
	_, ok := c.index[k]
	return ok
}
