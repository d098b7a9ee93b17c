package report

import "context"

// RecordRepository is the read side the report pipeline queries.
type RecordRepository interface {
	// QueryMonthly returns the records matching filter, pre-summed per
	// (distributor, sales rep, agency, product, year, month).
	QueryMonthly(ctx context.Context, filter ReportFilter) ([]TransactionRecord, error)
}

// MonthRepository loads the month reference table.
type MonthRepository interface {
	MonthNames(ctx context.Context) (MonthNameLookup, error)
}
