package sales

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/salesreport/backend/internal/domain/sales"
	"github.com/salesreport/backend/internal/infrastructure/sheetimport"
)

// UploadSheetRequest carries one spreadsheet upload
type UploadSheetRequest struct {
	Name       string
	FileName   string
	Content    io.Reader
	UploadedBy string
}

// SheetResponse is the API view of an upload batch
type SheetResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	FileName     string    `json:"file_name"`
	RecordsCount int       `json:"records_count"`
	UploadedBy   string    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// UploadResult summarises an ingested sheet
type UploadResult struct {
	Sheet     SheetResponse          `json:"sheet"`
	Inserted  int                    `json:"inserted"`
	Skipped   int                    `json:"skipped"`
	Errors    []sheetimport.RowError `json:"errors,omitempty"`
	Truncated bool                   `json:"truncated,omitempty"`
}

// HistoryResponse is one audit trail entry
type HistoryResponse struct {
	ID        int64     `json:"id"`
	SheetName string    `json:"sheet_name"`
	Action    string    `json:"action"`
	ChangedBy string    `json:"changed_by"`
	ChangedOn time.Time `json:"changed_on"`
}

// MonthResponse is one row of the month table
type MonthResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ToSheetResponse converts a domain batch
func ToSheetResponse(b *sales.UploadBatch) SheetResponse {
	return SheetResponse{
		ID:           b.ID,
		Name:         b.Name,
		FileName:     b.FileName,
		RecordsCount: b.RecordsCount,
		UploadedBy:   b.UploadedBy,
		CreatedAt:    b.CreatedAt,
	}
}

// ToHistoryResponse converts a domain history entry
func ToHistoryResponse(h *sales.UploadHistory) HistoryResponse {
	return HistoryResponse{
		ID:        h.ID,
		SheetName: h.SheetName,
		Action:    string(h.Action),
		ChangedBy: h.ChangedBy,
		ChangedOn: h.ChangedOn,
	}
}
