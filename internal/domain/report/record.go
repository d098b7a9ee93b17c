package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one pre-summed row of the monthly sales query:
// the totals of one (distributor, sales rep, agency, product) tuple in one month.
type TransactionRecord struct {
	Distributor string
	SalesRep    string
	Agency      string
	Product     string
	Customer    string
	Area        string
	Year        int
	Month       int
	NetAmount   decimal.Decimal
	// Quantity is optional in the source data; an invalid value counts as zero.
	Quantity decimal.NullDecimal
}

// MonthKey returns the record's calendar month.
func (r TransactionRecord) MonthKey() MonthKey {
	return MonthKey{Year: r.Year, Month: r.Month}
}

// Qty returns the quantity with a missing value defaulted to zero.
func (r TransactionRecord) Qty() decimal.Decimal {
	if !r.Quantity.Valid {
		return decimal.Zero
	}
	return r.Quantity.Decimal
}

// Validate checks the fields the aggregation keys on.
func (r TransactionRecord) Validate(index int) error {
	switch {
	case strings.TrimSpace(r.Distributor) == "":
		return &MalformedRecordError{Index: index, Reason: "missing distributor"}
	case strings.TrimSpace(r.Agency) == "":
		return &MalformedRecordError{Index: index, Reason: "missing agency"}
	case strings.TrimSpace(r.Product) == "":
		return &MalformedRecordError{Index: index, Reason: "missing product"}
	}
	if _, err := NewMonthKey(r.Year, r.Month); err != nil {
		return &MalformedRecordError{Index: index, Reason: err.Error()}
	}
	return nil
}
