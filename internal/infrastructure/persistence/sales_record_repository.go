package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/salesreport/backend/internal/domain/report"
)

// GormSalesRecordRepository serves the monthly report query
type GormSalesRecordRepository struct {
	db *gorm.DB
}

// NewGormSalesRecordRepository creates a new GormSalesRecordRepository
func NewGormSalesRecordRepository(db *gorm.DB) *GormSalesRecordRepository {
	return &GormSalesRecordRepository{db: db}
}

// yearMonthExpr returns the SQL extracting year and month from txn_date.
func yearMonthExpr(db *gorm.DB) (year, month string) {
	if db.Dialector.Name() == DialectSQLite {
		return "CAST(strftime('%Y', txn_date) AS INTEGER)", "CAST(strftime('%m', txn_date) AS INTEGER)"
	}
	return "CAST(EXTRACT(YEAR FROM txn_date) AS INTEGER)", "CAST(EXTRACT(MONTH FROM txn_date) AS INTEGER)"
}

// QueryMonthly sums net value and converted quantity per distributor, sales
// rep, agency, product and calendar month. Undated lines are excluded.
func (r *GormSalesRecordRepository) QueryMonthly(ctx context.Context, filter report.ReportFilter) ([]report.TransactionRecord, error) {
	type monthlyResult struct {
		Distributor string
		SalesRep    string
		Agency      string
		Product     string
		Year        int
		Month       int
		NetAmount   decimal.Decimal
		Quantity    decimal.NullDecimal
	}

	year, month := yearMonthExpr(r.db)
	query := r.db.WithContext(ctx).Table("sales_records").
		Select(fmt.Sprintf(`
			distributor, COALESCE(sales_rep, '') AS sales_rep, agency, product,
			%s AS year, %s AS month,
			COALESCE(SUM(net_value), 0) AS net_amount,
			SUM(qty_conv) AS quantity`, year, month)).
		Where("txn_date IS NOT NULL")

	query = applyReportFilter(query, filter)

	var results []monthlyResult
	err := query.
		Group(fmt.Sprintf("distributor, sales_rep, agency, product, %s, %s", year, month)).
		Order(fmt.Sprintf("distributor, sales_rep, agency, product, %s, %s", year, month)).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("query monthly sales: %w", err)
	}

	records := make([]report.TransactionRecord, len(results))
	for i, res := range results {
		records[i] = report.TransactionRecord{
			Distributor: res.Distributor,
			SalesRep:    res.SalesRep,
			Agency:      res.Agency,
			Product:     res.Product,
			Year:        res.Year,
			Month:       res.Month,
			NetAmount:   res.NetAmount,
			Quantity:    res.Quantity,
		}
	}
	return records, nil
}

// applyReportFilter narrows sales_records. The upper date bound covers the
// whole of ToDate.
func applyReportFilter(query *gorm.DB, filter report.ReportFilter) *gorm.DB {
	in := func(q *gorm.DB, column string, values []string) *gorm.DB {
		if len(values) == 0 {
			return q
		}
		return q.Where(column+" IN ?", values)
	}
	query = in(query, "distributor", filter.Distributors)
	query = in(query, "agency", filter.Agencies)
	query = in(query, "product", filter.Products)
	query = in(query, "sales_rep", filter.SalesReps)
	query = in(query, "customer", filter.Customers)
	query = in(query, "area", filter.Areas)

	if filter.FromDate != nil {
		query = query.Where("txn_date >= ?", startOfDay(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("txn_date < ?", startOfDay(*filter.ToDate).AddDate(0, 0, 1))
	}
	return query
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
