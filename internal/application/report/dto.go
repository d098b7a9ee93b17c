package report

import (
	"time"

	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/domain/shared"
)

// GenerateReportRequest carries the report filters.
type GenerateReportRequest struct {
	Distributors []string
	Agencies     []string
	Products     []string
	SalesReps    []string
	Customers    []string
	Areas        []string
	FromDate     *time.Time
	ToDate       *time.Time
	RequestedBy  string
}

// Validate checks the date range.
func (r GenerateReportRequest) Validate() error {
	if r.FromDate != nil && r.ToDate != nil && r.FromDate.After(*r.ToDate) {
		return shared.ErrInvalidInput.WithMessage("fromDate must not be after toDate")
	}
	return nil
}

// Filter converts the request into the domain filter.
func (r GenerateReportRequest) Filter() report.ReportFilter {
	return report.ReportFilter{
		Distributors: r.Distributors,
		Agencies:     r.Agencies,
		Products:     r.Products,
		SalesReps:    r.SalesReps,
		Customers:    r.Customers,
		Areas:        r.Areas,
		FromDate:     r.FromDate,
		ToDate:       r.ToDate,
	}
}

// GeneratedReport describes a stored report document.
type GeneratedReport struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	Pages       int       `json:"pages"`
	GeneratedAt time.Time `json:"generated_at"`
}
