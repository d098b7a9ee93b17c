package sheetimport

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXReader streams the first worksheet of a workbook. Cells are read raw,
// so date cells surface as Excel serial numbers.
type XLSXReader struct {
	file    *excelize.File
	rows    *excelize.Rows
	sheet   string
	headers []string
	line    int
}

// NewXLSXReader opens the workbook and consumes its header row.
func NewXLSXReader(r io.Reader) (*XLSXReader, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		_ = file.Close()
		return nil, ErrNoSheets
	}

	rows, err := file.Rows(sheets[0])
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	x := &XLSXReader{file: file, rows: rows, sheet: sheets[0]}
	if !rows.Next() {
		_ = x.Close()
		return nil, ErrMissingHeader
	}
	header, err := rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		_ = x.Close()
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	x.headers = make([]string, len(header))
	for i, h := range header {
		x.headers[i] = strings.TrimSpace(h)
	}
	x.line = 1
	return x, nil
}

// Sheet returns the name of the worksheet being read
func (x *XLSXReader) Sheet() string {
	return x.sheet
}

func (x *XLSXReader) Headers() []string {
	return x.headers
}

// ReadRow returns the next row or io.EOF
func (x *XLSXReader) ReadRow() (*Row, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, fmt.Errorf("error reading row %d: %w", x.line+1, err)
		}
		return nil, io.EOF
	}
	x.line++
	cells, err := x.rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("error reading row %d: %w", x.line, err)
	}
	return mapFields(x.headers, cells, x.line, true), nil
}

func (x *XLSXReader) Close() error {
	var errs []error
	if x.rows != nil {
		errs = append(errs, x.rows.Close())
	}
	errs = append(errs, x.file.Close())
	return errors.Join(errs...)
}
