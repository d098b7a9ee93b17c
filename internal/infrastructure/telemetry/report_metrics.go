package telemetry

import (
	"context"
	"time"
)

// Outcome attribute values
const (
	OutcomeSuccess = "success"
	OutcomeNoData  = "no_data"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// AppMetrics holds the report and ingestion instruments. A nil *AppMetrics
// records nothing, so services can run without metrics.
type AppMetrics struct {
	reportsTotal   *Counter
	reportDuration *Histogram
	reportPages    *Histogram
	reportBytes    *Histogram
	uploadsTotal   *Counter
	rowsInserted   *Counter
	rowsSkipped    *Counter
	reportsSwept   *Counter
}

// NewAppMetrics creates the instruments on mp's meter.
func NewAppMetrics(mp *MeterProvider) (*AppMetrics, error) {
	meter := mp.Meter(TracerName)
	m := &AppMetrics{}
	var err error

	if m.reportsTotal, err = NewCounter(meter, "report_generate_total", "Report generation attempts by outcome", "{report}"); err != nil {
		return nil, err
	}
	if m.reportDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "report_generate_duration_seconds",
		Description: "Time from query to stored document",
		Unit:        "s",
		Boundaries:  RenderDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.reportPages, err = NewHistogram(meter, HistogramOpts{
		Name:        "report_pages",
		Description: "Pages per generated report",
		Unit:        "{page}",
		Boundaries:  PageCountBuckets,
	}); err != nil {
		return nil, err
	}
	if m.reportBytes, err = NewHistogram(meter, HistogramOpts{
		Name:        "report_size_bytes",
		Description: "Size of generated reports",
		Unit:        "By",
		Boundaries:  []float64{10e3, 50e3, 100e3, 500e3, 1e6, 5e6, 20e6},
	}); err != nil {
		return nil, err
	}
	if m.uploadsTotal, err = NewCounter(meter, "sheet_upload_total", "Sheet uploads by outcome", "{upload}"); err != nil {
		return nil, err
	}
	if m.rowsInserted, err = NewCounter(meter, "sheet_rows_inserted_total", "Sales rows stored from uploads", "{row}"); err != nil {
		return nil, err
	}
	if m.rowsSkipped, err = NewCounter(meter, "sheet_rows_skipped_total", "Rows skipped for an invalid date or number", "{row}"); err != nil {
		return nil, err
	}
	if m.reportsSwept, err = NewCounter(meter, "report_retention_removed_total", "Stored reports removed by the retention sweep", "{report}"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordReport counts one generation attempt. pages and size are only
// recorded on success.
func (m *AppMetrics) RecordReport(ctx context.Context, outcome string, elapsed time.Duration, pages int, size int64) {
	if m == nil {
		return
	}
	m.reportsTotal.Inc(ctx, AttrOutcome.String(outcome))
	m.reportDuration.RecordDuration(ctx, elapsed, AttrOutcome.String(outcome))
	if outcome == OutcomeSuccess {
		m.reportPages.Record(ctx, float64(pages))
		m.reportBytes.Record(ctx, float64(size))
	}
}

// RecordUpload counts one upload attempt and its row totals.
func (m *AppMetrics) RecordUpload(ctx context.Context, outcome string, inserted, skipped int) {
	if m == nil {
		return
	}
	m.uploadsTotal.Inc(ctx, AttrOutcome.String(outcome))
	if inserted > 0 {
		m.rowsInserted.Add(ctx, int64(inserted))
	}
	if skipped > 0 {
		m.rowsSkipped.Add(ctx, int64(skipped))
	}
}

// RecordSweep counts reports removed by one retention run.
func (m *AppMetrics) RecordSweep(ctx context.Context, removed int) {
	if m == nil || removed <= 0 {
		return
	}
	m.reportsSwept.Add(ctx, int64(removed))
}
