package report

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/salesreport/backend/internal/infrastructure/config"
	"github.com/salesreport/backend/internal/infrastructure/printing"
)

// GeometryFrom returns the A4 page described by cfg.
func GeometryFrom(cfg config.ReportConfig) printing.PageGeometry {
	if cfg.Orientation == "portrait" {
		return printing.A4Portrait(cfg.Margin)
	}
	return printing.A4Landscape(cfg.Margin)
}

// EmitterConfigFrom overlays the configured layout on the defaults.
func EmitterConfigFrom(cfg config.ReportConfig) EmitterConfig {
	ec := DefaultEmitterConfig()
	ec.Layout.ColumnPadding = cfg.ColumnPadding
	ec.Layout.ColumnCap = cfg.ColumnCap
	ec.Layout.ColumnFloor = cfg.ColumnFloor
	ec.Layout.LineHeightFactor = cfg.LineHeightFactor
	ec.BaseFontSize = cfg.BaseFontSize
	ec.MinFontSize = cfg.MinFontSize
	ec.DistributorReserve = cfg.DistributorReserve
	ec.AgencyReserve = cfg.AgencyReserve
	return ec
}

// NewPDFPipeline wires a gofpdf pipeline from configuration.
func NewPDFPipeline(cfg config.ReportConfig, logger *zap.Logger) *Pipeline {
	emitter := NewEmitter(EmitterConfigFrom(cfg), printing.NewNumberFormatter(language.AmericanEnglish))
	return NewPipeline(GeometryFrom(cfg), emitter, PDFDocuments, logger)
}
