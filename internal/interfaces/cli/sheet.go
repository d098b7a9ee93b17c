package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/infrastructure/sheetimport"
)

// loadRecords parses a sheet and keeps the records the filter selects.
// The date range is applied per day, as the server query does.
func (cli *CLI) loadRecords(path string, filter report.ReportFilter) ([]report.TransactionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, err := sheetimport.Parse(filepath.Base(path), f, cli.maxErrors)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	for _, e := range sheet.Skipped.Errors() {
		cli.log.Warn("skipping row", zap.Int("row", e.Row), zap.String("reason", e.Message))
	}

	selected := make([]report.TransactionRecord, 0, len(sheet.Rows))
	for _, l := range sheet.Rows {
		if l.Date == nil || !filter.CoversDay(*l.Date) {
			continue
		}
		if r, ok := l.ToRecord(); ok && filter.Matches(r) {
			selected = append(selected, r)
		}
	}
	cli.log.Info("sheet loaded",
		zap.String("file", path),
		zap.Int("rows", sheet.DataRows),
		zap.Int("skipped", sheet.Skipped.TotalCount()),
		zap.Int("selected", len(selected)))
	return selected, nil
}
