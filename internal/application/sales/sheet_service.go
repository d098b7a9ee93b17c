package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/domain/sales"
	"github.com/salesreport/backend/internal/domain/shared"
	"github.com/salesreport/backend/internal/infrastructure/cache"
	"github.com/salesreport/backend/internal/infrastructure/sheetimport"
	"github.com/salesreport/backend/internal/infrastructure/telemetry"
)

// SheetService ingests spreadsheets and manages upload batches.
type SheetService struct {
	sheets       sales.SheetRepository
	cache        cache.LookupCache
	maxRowErrors int
	metrics      *telemetry.AppMetrics
	logger       *zap.Logger
	now          func() time.Time
}

// NewSheetService creates a new SheetService. lookups may be nil.
func NewSheetService(sheets sales.SheetRepository, lookups cache.LookupCache, maxRowErrors int, logger *zap.Logger) *SheetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetService{
		sheets:       sheets,
		cache:        lookups,
		maxRowErrors: maxRowErrors,
		logger:       logger,
		now:          time.Now,
	}
}

// WithMetrics records upload counts on m.
func (s *SheetService) WithMetrics(m *telemetry.AppMetrics) *SheetService {
	s.metrics = m
	return s
}

// Upload parses the sheet, stores its valid rows under a new batch and
// records the upload in the history. Rows with an invalid date or number are
// skipped and reported back.
func (s *SheetService) Upload(ctx context.Context, req UploadSheetRequest) (res *UploadResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "SheetService", "Upload")
	defer span.End()
	defer func() {
		switch {
		case res != nil:
			s.metrics.RecordUpload(ctx, telemetry.OutcomeSuccess, res.Inserted, res.Skipped)
		case errors.Is(err, shared.ErrInvalidInput):
			s.metrics.RecordUpload(ctx, telemetry.OutcomeInvalid, 0, 0)
		default:
			s.metrics.RecordUpload(ctx, telemetry.OutcomeError, 0, 0)
		}
		if err != nil {
			telemetry.RecordError(span, err)
		}
	}()

	sheet, err := sheetimport.Parse(req.FileName, req.Content, s.maxRowErrors)
	if err != nil {
		return nil, toInputError(err)
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrSheetRows, sheet.DataRows,
		telemetry.SpanAttrSkipped, sheet.Skipped.TotalCount(),
	)

	now := s.now().UTC()
	batch, err := sales.NewUploadBatch(req.Name, req.FileName, req.UploadedBy, now)
	if err != nil {
		return nil, err
	}
	batch.RecordsCount = sheet.DataRows

	history := sales.NewHistory(batch, sales.ActionUploaded, req.UploadedBy, now)
	if err := s.sheets.SaveUpload(ctx, batch, sheet.Rows, history); err != nil {
		return nil, err
	}
	s.invalidateLookups(ctx)
	telemetry.SetAttributes(span, telemetry.SpanAttrBatchID, batch.ID)

	if sheet.Skipped.HasErrors() {
		for _, rowErr := range sheet.Skipped.Errors() {
			s.logger.Warn("skipped sheet row",
				zap.Int("row", rowErr.Row),
				zap.String("column", rowErr.Column),
				zap.String("reason", rowErr.Message),
				zap.String("value", rowErr.Value))
		}
	}
	s.logger.Info("sheet uploaded",
		zap.String("batch_id", batch.ID.String()),
		zap.String("name", batch.Name),
		zap.Int("rows", sheet.DataRows),
		zap.Int("inserted", len(sheet.Rows)),
		zap.Int("skipped", sheet.Skipped.TotalCount()),
		zap.String("uploaded_by", req.UploadedBy))
	telemetry.SetOK(span)

	return &UploadResult{
		Sheet:     ToSheetResponse(batch),
		Inserted:  len(sheet.Rows),
		Skipped:   sheet.Skipped.TotalCount(),
		Errors:    sheet.Skipped.Errors(),
		Truncated: sheet.Skipped.IsTruncated(),
	}, nil
}

// List returns every batch, newest first
func (s *SheetService) List(ctx context.Context) ([]SheetResponse, error) {
	batches, err := s.sheets.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SheetResponse, len(batches))
	for i, b := range batches {
		out[i] = ToSheetResponse(b)
	}
	return out, nil
}

// Remove deletes a batch with its records and appends a removal entry.
func (s *SheetService) Remove(ctx context.Context, id uuid.UUID, removedBy string) (*SheetResponse, error) {
	now := s.now().UTC()
	batch, err := s.sheets.RemoveUpload(ctx, id, func(b *sales.UploadBatch) *sales.UploadHistory {
		return sales.NewHistory(b, sales.ActionRemoved, removedBy, now)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateLookups(ctx)

	s.logger.Info("sheet removed",
		zap.String("batch_id", id.String()),
		zap.String("name", batch.Name),
		zap.String("removed_by", removedBy))
	resp := ToSheetResponse(batch)
	return &resp, nil
}

// History lists the audit trail, newest first
func (s *SheetService) History(ctx context.Context) ([]HistoryResponse, error) {
	entries, err := s.sheets.History(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryResponse, len(entries))
	for i, h := range entries {
		out[i] = ToHistoryResponse(h)
	}
	return out, nil
}

// invalidateLookups drops cached filter values; stale lookups are not fatal.
func (s *SheetService) invalidateLookups(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("failed to invalidate lookup cache", zap.Error(err))
	}
}

// toInputError maps file-level import failures to INVALID_INPUT.
func toInputError(err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, sheetimport.ErrUnsupportedFormat):
		return shared.ErrInvalidInput.WithMessage("Only .xlsx and .csv files are supported")
	case errors.Is(err, sheetimport.ErrEmptyFile),
		errors.Is(err, sheetimport.ErrMissingHeader),
		errors.Is(err, sheetimport.ErrNoSheets):
		return shared.ErrInvalidInput.WithMessage("The uploaded file contains no data")
	case errors.Is(err, sheetimport.ErrInvalidEncoding):
		return shared.ErrInvalidInput.WithMessage("The uploaded file is not valid UTF-8")
	}
	return shared.ErrInvalidInput.WithMessage("The uploaded file could not be read: " + err.Error())
}
