package sheetimport

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/salesreport/backend/internal/domain/shared"
)

func templateRow(overrides map[string]any) []any {
	values := map[string]any{
		ColDate:        45306.0,
		ColDistributor: "D1",
		ColSalesRep:    "R1",
		ColAgency:      "A1",
		ColProduct:     "P1",
		ColCustomer:    "C1",
		ColArea:        "North",
		ColQtyConv:     3.0,
		ColNetValue:    150.5,
	}
	for k, v := range overrides {
		values[k] = v
	}
	row := make([]any, len(RequiredColumns))
	for i, col := range RequiredColumns {
		if v, ok := values[col]; ok {
			row[i] = v
		} else {
			row[i] = ""
		}
	}
	return row
}

func workbook(t *testing.T, headers []string, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParse_XLSX(t *testing.T) {
	data := workbook(t, RequiredColumns,
		templateRow(nil),
		templateRow(map[string]any{ColDate: "not a date"}),
		templateRow(map[string]any{ColDate: "", ColNetValue: 10.0}),
		templateRow(map[string]any{ColDate: "2024-02-03", ColQtyConv: ""}),
	)

	sheet, err := Parse("sales.xlsx", bytes.NewReader(data), 10)
	require.NoError(t, err)

	assert.Equal(t, 4, sheet.DataRows)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, 1, sheet.Skipped.TotalCount())
	assert.Equal(t, ColDate, sheet.Skipped.Errors()[0].Column)
	assert.Equal(t, 3, sheet.Skipped.Errors()[0].Row)

	first := sheet.Rows[0]
	require.NotNil(t, first.Date)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *first.Date)
	assert.Equal(t, "D1", first.Distributor)
	assert.True(t, first.NetValue.Decimal.Equal(mustDecimal(t, "150.5")))
	assert.False(t, first.Cs.Valid)

	assert.Nil(t, sheet.Rows[1].Date)
	assert.False(t, sheet.Rows[2].QtyConv.Valid)

	records := sheet.Records()
	require.Len(t, records, 2)
	assert.Equal(t, 2024, records[1].Year)
	assert.Equal(t, 2, records[1].Month)
	assert.False(t, records[1].Quantity.Valid)
}

func TestParse_MissingColumns(t *testing.T) {
	headers := []string{ColDate, ColDistributor, ColAgency}
	data := workbook(t, headers, []any{45306.0, "D1", "A1"})

	_, err := Parse("sales.xlsx", bytes.NewReader(data), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Sales Rep")
	assert.Contains(t, err.Error(), "Net Value")
	assert.NotContains(t, err.Error(), "Distributor,")
}

func TestParse_CSV(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("\xEF\xBB\xBF")
	sb.WriteString(strings.Join(RequiredColumns, ","))
	sb.WriteString("\n")

	row := make([]string, len(RequiredColumns))
	for i, col := range RequiredColumns {
		switch col {
		case ColDate:
			row[i] = "2024-03-01"
		case ColDistributor:
			row[i] = "D1"
		case ColAgency:
			row[i] = "A1"
		case ColProduct:
			row[i] = "P1"
		case ColNetValue:
			row[i] = `"1,234.50"`
		}
	}
	sb.WriteString(strings.Join(row, ","))
	sb.WriteString("\n\n")

	sheet, err := Parse("sales.CSV", strings.NewReader(sb.String()), 10)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, 1, sheet.DataRows)
	assert.True(t, sheet.Rows[0].NetValue.Decimal.Equal(mustDecimal(t, "1234.50")))
	assert.Equal(t, time.March, sheet.Rows[0].Date.Month())
}

func TestParse_BadNumber(t *testing.T) {
	data := workbook(t, RequiredColumns, templateRow(map[string]any{ColGrossValue: "abc"}))

	sheet, err := Parse("sales.xlsx", bytes.NewReader(data), 10)
	require.NoError(t, err)
	assert.Empty(t, sheet.Rows)
	require.Len(t, sheet.Skipped.Errors(), 1)
	assert.Equal(t, ErrCodeImportInvalidType, sheet.Skipped.Errors()[0].Code)
	assert.Equal(t, "abc", sheet.Skipped.Errors()[0].Value)
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	_, err := Open("sales.xls", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOpen_InvalidWorkbook(t *testing.T) {
	_, err := Open("sales.xlsx", strings.NewReader("plainly not a zip archive"))
	assert.Error(t, err)
}
