package sheetimport

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Row is one data row keyed by header name.
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// IsEmpty reports whether every cell is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// RowReader streams header-keyed rows out of an uploaded sheet.
// ReadRow returns io.EOF once the sheet is exhausted.
type RowReader interface {
	Headers() []string
	ReadRow() (*Row, error)
	Close() error
}

// Format identifies the container of an upload
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DetectFormat derives the format from a file name
func DetectFormat(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}

// Open returns a reader positioned after the header row.
func Open(fileName string, r io.Reader) (RowReader, error) {
	format, err := DetectFormat(fileName)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return NewXLSXReader(r)
	default:
		parser, err := NewCSVParser(r)
		if err != nil {
			return nil, err
		}
		if err := parser.ParseHeader(); err != nil {
			return nil, err
		}
		return parser, nil
	}
}

func mapFields(headers, fields []string, line int, trim bool) *Row {
	row := &Row{
		LineNumber: line,
		Data:       make(map[string]string, len(headers)),
	}
	for i, header := range headers {
		if header == "" {
			continue
		}
		value := ""
		if i < len(fields) {
			value = fields[i]
			if trim {
				value = strings.TrimSpace(value)
			}
		}
		row.Data[header] = value
	}
	return row
}
