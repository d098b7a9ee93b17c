package sheetimport

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/domain/sales"
)

// MapRow converts a raw row. A bad date or number yields a RowError and the
// row is expected to be skipped.
func MapRow(row *Row) (sales.Line, *RowError) {
	out := sales.Line{
		SBU:          row.Get(ColSBU),
		TxnID:        row.Get(ColTxnID),
		Distributor:  row.Get(ColDistributor),
		SalesRep:     row.Get(ColSalesRep),
		TypeTxn:      row.Get(ColTypeTxn),
		Type:         row.Get(ColType),
		CustomerID:   row.Get(ColCustomerID),
		Customer:     row.Get(ColCustomer),
		OutletType:   row.Get(ColOutletType),
		Agency:       row.Get(ColAgency),
		Brand:        row.Get(ColBrand),
		ProductID:    row.Get(ColProductID),
		Product:      row.Get(ColProduct),
		BusinessArea: row.Get(ColBusinessArea),
		ReturnReason: row.Get(ColReturnReason),
		Town:         row.Get(ColTown),
		Area:         row.Get(ColArea),
	}

	date, err := ParseDate(row.Get(ColDate))
	if err != nil {
		rowErr := NewRowError(row.LineNumber, ColDate, ErrCodeImportInvalidDate,
			"invalid date", row.Get(ColDate))
		return sales.Line{}, &rowErr
	}
	out.Date = date

	numeric := []struct {
		column string
		dst    *decimal.NullDecimal
	}{
		{ColCs, &out.Cs},
		{ColPs, &out.Ps},
		{ColQtyConv, &out.QtyConv},
		{ColUnitPrice, &out.UnitPrice},
		{ColGrossValue, &out.GrossValue},
		{ColLineDiscount, &out.LineDiscount},
		{ColDocDiscount, &out.DocDiscount},
		{ColNetValue, &out.NetValue},
		{ColFreeQuantity, &out.FreeQuantity},
	}
	for _, n := range numeric {
		v, err := ParseDecimal(row.Get(n.column))
		if err != nil {
			rowErr := NewRowError(row.LineNumber, n.column, ErrCodeImportInvalidType,
				"expected a number", row.Get(n.column))
			return sales.Line{}, &rowErr
		}
		*n.dst = v
	}
	return out, nil
}

// ParseDecimal treats a blank cell as null and ignores thousands separators.
func ParseDecimal(value string) (decimal.NullDecimal, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// Sheet is the parsed content of one upload.
type Sheet struct {
	Headers []string
	Rows    []sales.Line
	// DataRows counts every non-blank data row read, skipped ones included.
	DataRows int
	Skipped  *ErrorCollection
}

// Records returns the dated rows as report records.
func (s *Sheet) Records() []report.TransactionRecord {
	return sales.Records(s.Rows)
}

// ReadSheet validates the header and maps every data row. Blank rows are
// ignored; rows that fail to map are collected in Skipped.
func ReadSheet(rr RowReader, maxErrors int) (*Sheet, error) {
	if err := ValidateHeaders(rr.Headers()); err != nil {
		return nil, err
	}

	sheet := &Sheet{
		Headers: rr.Headers(),
		Skipped: NewErrorCollection(maxErrors),
	}
	for {
		row, err := rr.ReadRow()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sheet: %w", err)
		}
		if row.IsEmpty() {
			continue
		}
		sheet.DataRows++

		mapped, rowErr := MapRow(row)
		if rowErr != nil {
			sheet.Skipped.Add(*rowErr)
			continue
		}
		sheet.Rows = append(sheet.Rows, mapped)
	}
	return sheet, nil
}

// Parse opens fileName's content and reads it as a sales sheet.
func Parse(fileName string, r io.Reader, maxErrors int) (*Sheet, error) {
	rr, err := Open(fileName, r)
	if err != nil {
		return nil, err
	}
	defer rr.Close()
	return ReadSheet(rr, maxErrors)
}
