package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/infrastructure/printing"
	"github.com/salesreport/backend/internal/infrastructure/telemetry"
)

// DocumentFactory creates an empty document with its first page.
type DocumentFactory func(g printing.PageGeometry, title string) printing.Document

// PDFDocuments is the gofpdf-backed DocumentFactory.
func PDFDocuments(g printing.PageGeometry, title string) printing.Document {
	return printing.NewPDFCanvas(g, title)
}

// RenderedDocument is the serialized output of one pipeline run.
type RenderedDocument struct {
	Data         []byte
	Pages        int
	Months       int
	Distributors int
	Skipped      int
}

// Pipeline turns records into a finished document: column model,
// aggregation, emission and serialization. It holds no per-request state.
type Pipeline struct {
	geometry    printing.PageGeometry
	emitter     *Emitter
	newDocument DocumentFactory
	logger      *zap.Logger
}

// NewPipeline creates a pipeline drawing on documents from newDocument.
func NewPipeline(geometry printing.PageGeometry, emitter *Emitter, newDocument DocumentFactory, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		geometry:    geometry,
		emitter:     emitter,
		newDocument: newDocument,
		logger:      logger,
	}
}

// Run renders records under filter. When the filter has both dates the month
// axis covers the whole range, even months without data. It returns
// report.ErrNoData when nothing survives validation.
func (p *Pipeline) Run(ctx context.Context, records []report.TransactionRecord, filter report.ReportFilter, names report.MonthNameLookup) (*RenderedDocument, error) {
	if len(records) == 0 {
		return nil, report.ErrNoData
	}

	axis := report.ColumnModelFromRecords(records, names)
	if filter.HasDateRange() {
		axis = axis.Extend(report.MonthKeyOf(*filter.FromDate), report.MonthKeyOf(*filter.ToDate), names)
	}

	_, aggSpan := telemetry.StartSpan(ctx, "report.aggregate",
		telemetry.WithAttribute("report.months", axis.Len()))
	skipped := 0
	tree, err := report.BuildTree(records, axis, filter.Dimensions(),
		report.WithMalformedHandler(func(e *report.MalformedRecordError) {
			skipped++
			p.logger.Warn("skipping malformed record",
				zap.Int("row", e.Index),
				zap.String("reason", e.Reason))
		}))
	telemetry.SetAttributes(aggSpan, "report.skipped", skipped)
	telemetry.RecordError(aggSpan, err)
	aggSpan.End()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, emitSpan := telemetry.StartSpan(ctx, "report.emit")
	defer emitSpan.End()

	doc := p.newDocument(p.geometry, ReportTitle)
	labels := map[string]string{telemetry.ProfilingLabelRegion: "report_emit"}
	telemetry.WithProfilingLabels(ctx, labels, func(context.Context) {
		p.emitter.Emit(doc, p.geometry, tree, TitleBlock{
			Title:     ReportTitle,
			DateRange: dateRange(filter, axis),
		})
	})

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		telemetry.RecordError(emitSpan, err)
		return nil, fmt.Errorf("serialize report: %w", err)
	}
	telemetry.SetAttributes(emitSpan, telemetry.SpanAttrReportPages, doc.PageCount())

	p.logger.Debug("report rendered",
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped),
		zap.Int("months", axis.Len()),
		zap.Int("distributors", len(tree.Distributors)),
		zap.Int("pages", doc.PageCount()))

	return &RenderedDocument{
		Data:         buf.Bytes(),
		Pages:        doc.PageCount(),
		Months:       axis.Len(),
		Distributors: len(tree.Distributors),
		Skipped:      skipped,
	}, nil
}

// dateRange prints the filter dates, falling back to the axis ends for a
// missing side.
func dateRange(filter report.ReportFilter, axis *report.ColumnModel) string {
	const layout = "2006-01-02"
	keys := axis.Keys()
	if len(keys) == 0 {
		return ""
	}
	from := firstOfMonth(keys[0]).Format(layout)
	to := firstOfMonth(keys[len(keys)-1].Next()).AddDate(0, 0, -1).Format(layout)
	if filter.FromDate != nil {
		from = filter.FromDate.Format(layout)
	}
	if filter.ToDate != nil {
		to = filter.ToDate.Format(layout)
	}
	return from + " - " + to
}

func firstOfMonth(k report.MonthKey) time.Time {
	return time.Date(k.Year, time.Month(k.Month), 1, 0, 0, 0, 0, time.UTC)
}
