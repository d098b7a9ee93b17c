package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/domain/shared"
	"github.com/salesreport/backend/internal/infrastructure/printing"
	"github.com/salesreport/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReportFilePrefix starts every generated report file name.
const ReportFilePrefix = "Distributor_Agency_Product_Report_"

// ReportService generates distributor/agency/product reports on demand.
// Every call builds its own tree, cursor and buffer, so the service is safe
// for concurrent use.
type ReportService struct {
	records  report.RecordRepository
	months   report.MonthRepository
	sink     printing.DocumentSink
	pipeline *Pipeline
	metrics  *telemetry.AppMetrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	records report.RecordRepository,
	months report.MonthRepository,
	sink printing.DocumentSink,
	pipeline *Pipeline,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		records:  records,
		months:   months,
		sink:     sink,
		pipeline: pipeline,
		logger:   logger,
		now:      time.Now,
	}
}

// WithMetrics records generation counts and timings on m.
func (s *ReportService) WithMetrics(m *telemetry.AppMetrics) *ReportService {
	s.metrics = m
	return s
}

// Generate queries, renders and stores a report.
// It returns report.ErrNoData when the filters select nothing and a
// *report.SinkWriteError when the document cannot be stored.
func (s *ReportService) Generate(ctx context.Context, req GenerateReportRequest) (out *GeneratedReport, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ReportService", "Generate")
	defer span.End()
	start := time.Now()
	defer func() {
		if err != nil && !errors.Is(err, report.ErrNoData) {
			telemetry.RecordError(span, err)
		}
		if out != nil {
			s.metrics.RecordReport(ctx, telemetry.OutcomeSuccess, time.Since(start), out.Pages, out.Size)
		} else {
			s.metrics.RecordReport(ctx, outcomeOf(err), time.Since(start), 0, 0)
		}
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	filter := req.Filter()
	telemetry.SetAttributes(span,
		"report.distributors", len(filter.Distributors),
		"report.sales_rep_filter", filter.SalesRepFilterActive(),
	)

	records, err := s.records.QueryMonthly(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query report records: %w", err)
	}
	telemetry.AddEvent(span, "records.loaded", "count", len(records))
	if len(records) == 0 {
		return nil, report.ErrNoData
	}

	names := s.monthNames(ctx)

	rendered, err := s.pipeline.Run(ctx, records, filter, names)
	if err != nil {
		return nil, err
	}
	telemetry.AddEvent(span, "report.rendered", "pages", rendered.Pages, "bytes", len(rendered.Data))

	generatedAt := s.now()
	name := fmt.Sprintf("%s%d.pdf", ReportFilePrefix, generatedAt.UnixMilli())
	stored, err := s.sink.Store(ctx, &printing.StoreRequest{
		Name:        name,
		ContentType: "application/pdf",
		Data:        rendered.Data,
	})
	if err != nil {
		return nil, &report.SinkWriteError{Path: name, Err: err}
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrReportName, name,
		telemetry.SpanAttrReportPages, rendered.Pages,
	)
	s.logger.Info("report generated",
		zap.String("name", name),
		zap.String("path", stored.Path),
		zap.Int("pages", rendered.Pages),
		zap.Int("records", len(records)),
		zap.Int("skipped", rendered.Skipped),
		zap.String("requested_by", req.RequestedBy))
	telemetry.SetOK(span)

	return &GeneratedReport{
		Name:        name,
		Path:        stored.Path,
		URL:         stored.URL,
		Size:        stored.Size,
		Pages:       rendered.Pages,
		GeneratedAt: generatedAt,
	}, nil
}

// monthNames loads the month reference table. A failure degrades to the
// built-in English names instead of failing the report.
func (s *ReportService) monthNames(ctx context.Context) report.MonthNameLookup {
	names, err := s.months.MonthNames(ctx)
	if err != nil {
		s.logger.Warn("month names unavailable, using defaults", zap.Error(err))
		return report.DefaultMonthNames()
	}
	return names
}

// Open streams a stored report back.
func (s *ReportService) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.sink.Open(ctx, path)
}

// Remove deletes a stored report, typically right after its download.
func (s *ReportService) Remove(ctx context.Context, path string) error {
	if err := s.sink.Delete(ctx, path); err != nil {
		s.logger.Warn("failed to remove report", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, report.ErrNoData):
		return telemetry.OutcomeNoData
	case errors.Is(err, shared.ErrInvalidInput):
		return telemetry.OutcomeInvalid
	default:
		return telemetry.OutcomeError
	}
}
