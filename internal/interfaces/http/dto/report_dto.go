package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/salesreport/backend/internal/application/report"
)

// DateLayout is the wire format of report dates
const DateLayout = "2006-01-02"

// StringList accepts either a JSON array or a comma-separated string, so
// `"products": "A, B"` and `"products": ["A", "B"]` bind the same way.
// Blank entries are dropped.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		items = strings.Split(s, ",")
	} else if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*l = out
	return nil
}

// GenerateReportRequest is the body of POST /reports/generate. The
// struct-level rule registered by middleware.SetupValidator rejects a
// fromDate after toDate.
type GenerateReportRequest struct {
	Distributors StringList `json:"distributors"`
	Agencies     StringList `json:"agencies"`
	Products     StringList `json:"products"`
	SalesReps    StringList `json:"salesReps"`
	Customers    StringList `json:"customers"`
	Areas        StringList `json:"areas"`
	FromDate     string     `json:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate       string     `json:"toDate" binding:"omitempty,datetime=2006-01-02"`
}

// DateRange parses both ends; unset ends are nil.
func (r GenerateReportRequest) DateRange() (from, to *time.Time, err error) {
	if from, err = parseDate(r.FromDate); err != nil {
		return nil, nil, err
	}
	if to, err = parseDate(r.ToDate); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// ToServiceRequest converts the body into the application request
func (r GenerateReportRequest) ToServiceRequest(requestedBy string) (report.GenerateReportRequest, error) {
	from, to, err := r.DateRange()
	if err != nil {
		return report.GenerateReportRequest{}, err
	}
	return report.GenerateReportRequest{
		Distributors: r.Distributors,
		Agencies:     r.Agencies,
		Products:     r.Products,
		SalesReps:    r.SalesReps,
		Customers:    r.Customers,
		Areas:        r.Areas,
		FromDate:     from,
		ToDate:       to,
		RequestedBy:  requestedBy,
	}, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
