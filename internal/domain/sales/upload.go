package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/salesreport/backend/internal/domain/shared"
)

// HistoryAction names an entry of the upload audit trail
type HistoryAction string

const (
	ActionUploaded HistoryAction = "ExcelSheet Uploaded"
	ActionRemoved  HistoryAction = "ExcelSheet Removed"
)

// UploadBatch groups the lines ingested from one sheet so they can be
// removed together.
type UploadBatch struct {
	shared.BaseEntity
	Name         string
	FileName     string
	RecordsCount int
	UploadedBy   string
}

// NewUploadBatch creates a batch; name falls back to the file name
func NewUploadBatch(name, fileName, uploadedBy string, now time.Time) (*UploadBatch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(fileName)
	}
	if name == "" {
		return nil, shared.ErrInvalidInput.WithMessage("Sheet name cannot be empty")
	}
	if len(name) > 255 {
		return nil, shared.ErrInvalidInput.WithMessage("Sheet name cannot exceed 255 characters")
	}
	return &UploadBatch{
		BaseEntity: shared.NewBaseEntity(now),
		Name:       name,
		FileName:   fileName,
		UploadedBy: uploadedBy,
	}, nil
}

// Label renders the batch the way the history shows it: "<name> (<count>)"
func (b *UploadBatch) Label() string {
	return fmt.Sprintf("%s (%d)", b.Name, b.RecordsCount)
}

// UploadHistory is an append-only audit entry.
type UploadHistory struct {
	ID        int64
	SheetName string
	Action    HistoryAction
	ChangedBy string
	ChangedOn time.Time
}

// NewHistory records action on batch
func NewHistory(batch *UploadBatch, action HistoryAction, changedBy string, now time.Time) *UploadHistory {
	return &UploadHistory{
		SheetName: batch.Label(),
		Action:    action,
		ChangedBy: changedBy,
		ChangedOn: now,
	}
}

// SalesRecord is a stored line attached to its batch.
type SalesRecord struct {
	ID      int64
	BatchID uuid.UUID
	Line
}
