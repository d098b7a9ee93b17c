package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/domain/sales"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func line(date *time.Time, d, rep, a, p, net, qty string) sales.Line {
	l := sales.Line{
		Date:        date,
		Distributor: d,
		SalesRep:    rep,
		Agency:      a,
		Product:     p,
		Customer:    "C-" + d,
		Area:        "Area-" + a,
		NetValue:    nd(net),
	}
	if qty != "" {
		l.QtyConv = nd(qty)
	}
	return l
}

func seedUpload(t *testing.T, db *Database, lines ...sales.Line) *sales.UploadBatch {
	t.Helper()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	batch, err := sales.NewUploadBatch("sheet", "sheet.xlsx", "tester", now)
	require.NoError(t, err)
	batch.RecordsCount = len(lines)
	repo := NewGormSheetRepository(db.DB, 2)
	require.NoError(t, repo.SaveUpload(context.Background(), batch, lines,
		sales.NewHistory(batch, sales.ActionUploaded, "tester", now)))
	return batch
}

func TestQueryMonthly_PostgresShape(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"distributor", "sales_rep", "agency", "product", "year", "month", "net_amount", "quantity"}).
		AddRow("D1", "R1", "A1", "P1", 2024, 1, "100.50", "3").
		AddRow("D1", "R1", "A1", "P1", 2024, 2, "0", nil)

	mock.ExpectQuery(`(?s)SELECT .*EXTRACT\(YEAR FROM txn_date\).*FROM "sales_records" WHERE txn_date IS NOT NULL AND distributor IN \(\$1,\$2\) AND sales_rep IN \(\$3\) AND txn_date >= \$4 AND txn_date < \$5 GROUP BY .*ORDER BY`).
		WithArgs("D1", "D2", "R1", *day(2024, 1, 1), *day(2024, 3, 1)).
		WillReturnRows(rows)

	repo := NewGormSalesRecordRepository(db.DB)
	records, err := repo.QueryMonthly(context.Background(), report.ReportFilter{
		Distributors: []string{"D1", "D2"},
		SalesReps:    []string{"R1"},
		FromDate:     day(2024, 1, 1),
		ToDate:       day(2024, 2, 29),
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 2024, records[0].Year)
	assert.Equal(t, 1, records[0].Month)
	assert.True(t, records[0].NetAmount.Equal(decimal.RequireFromString("100.50")))
	assert.True(t, records[0].Quantity.Valid)
	assert.False(t, records[1].Quantity.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryMonthly_SQLite(t *testing.T) {
	db := newSQLiteDatabase(t)
	seedUpload(t, db,
		line(day(2024, 1, 5), "D1", "R1", "A1", "P1", "100", "2"),
		line(day(2024, 1, 20), "D1", "R1", "A1", "P1", "50.25", "1"),
		line(day(2024, 3, 2), "D1", "R1", "A1", "P1", "10", ""),
		line(day(2024, 2, 2), "D2", "R2", "A2", "P9", "7", "7"),
		line(nil, "D1", "R1", "A1", "P1", "999", "9"),
	)
	repo := NewGormSalesRecordRepository(db.DB)
	ctx := context.Background()

	t.Run("sums per month and skips undated lines", func(t *testing.T) {
		records, err := repo.QueryMonthly(ctx, report.ReportFilter{})
		require.NoError(t, err)
		require.Len(t, records, 3)

		jan := records[0]
		assert.Equal(t, "D1", jan.Distributor)
		assert.Equal(t, 1, jan.Month)
		assert.True(t, jan.NetAmount.Equal(decimal.RequireFromString("150.25")), jan.NetAmount.String())
		assert.True(t, jan.Qty().Equal(decimal.NewFromInt(3)))

		mar := records[1]
		assert.Equal(t, 3, mar.Month)
		assert.False(t, mar.Quantity.Valid)

		assert.Equal(t, "D2", records[2].Distributor)
	})

	t.Run("filters", func(t *testing.T) {
		records, err := repo.QueryMonthly(ctx, report.ReportFilter{Products: []string{"P9"}})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "A2", records[0].Agency)

		records, err = repo.QueryMonthly(ctx, report.ReportFilter{Areas: []string{"Area-A1"}, Customers: []string{"C-D1"}})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("to date includes the whole day", func(t *testing.T) {
		records, err := repo.QueryMonthly(ctx, report.ReportFilter{
			FromDate: day(2024, 1, 20),
			ToDate:   day(2024, 2, 2),
		})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.True(t, records[0].NetAmount.Equal(decimal.RequireFromString("50.25")))
	})

	t.Run("no match is empty", func(t *testing.T) {
		records, err := repo.QueryMonthly(ctx, report.ReportFilter{Distributors: []string{"nobody"}})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
