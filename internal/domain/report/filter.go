package report

import (
	"strings"
	"time"
)

// ReportFilter selects the records of one report. Empty slices mean "no restriction".
type ReportFilter struct {
	Distributors []string
	Agencies     []string
	Products     []string
	SalesReps    []string
	Customers    []string
	Areas        []string
	FromDate     *time.Time
	ToDate       *time.Time
}

// SalesRepFilterActive reports whether the report is restricted to sales reps,
// which switches the summary grouping to distributor, sales rep, agency.
func (f ReportFilter) SalesRepFilterActive() bool {
	return len(f.SalesReps) > 0
}

// Dimensions returns the summary grouping implied by the filter.
func (f ReportFilter) Dimensions() Dimensions {
	return DimensionsFor(f.SalesRepFilterActive())
}

// HasDateRange reports whether both ends of the date range are set.
func (f ReportFilter) HasDateRange() bool {
	return f.FromDate != nil && f.ToDate != nil
}

// Matches applies the filter to an in-memory record. Records only carry
// their month, so the date range is applied by month; callers holding dated
// lines narrow them with CoversDay first.
func (f ReportFilter) Matches(r TransactionRecord) bool {
	if !matchAny(f.Distributors, r.Distributor) ||
		!matchAny(f.Agencies, r.Agency) ||
		!matchAny(f.Products, r.Product) ||
		!matchAny(f.SalesReps, r.SalesRep) ||
		!matchAny(f.Customers, r.Customer) ||
		!matchAny(f.Areas, r.Area) {
		return false
	}
	mk := r.MonthKey()
	if f.FromDate != nil && mk.Before(MonthKeyOf(*f.FromDate)) {
		return false
	}
	if f.ToDate != nil && MonthKeyOf(*f.ToDate).Before(mk) {
		return false
	}
	return true
}

// CoversDay reports whether t falls inside the date range by calendar day
// (UTC). Both bounds are inclusive.
func (f ReportFilter) CoversDay(t time.Time) bool {
	day := dayOf(t)
	if f.FromDate != nil && day.Before(dayOf(*f.FromDate)) {
		return false
	}
	if f.ToDate != nil && day.After(dayOf(*f.ToDate)) {
		return false
	}
	return true
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func matchAny(values []string, v string) bool {
	if len(values) == 0 {
		return true
	}
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// SplitList turns a comma separated query value into trimmed, non-empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
