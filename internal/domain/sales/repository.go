package sales

import (
	"context"

	"github.com/google/uuid"
)

// SheetRepository persists upload batches with their lines and history.
// Both write operations are atomic.
type SheetRepository interface {
	// SaveUpload inserts batch, its lines and the history entry
	SaveUpload(ctx context.Context, batch *UploadBatch, lines []Line, history *UploadHistory) error

	// RemoveUpload deletes the batch and its lines, then appends the entry
	// built by history. An unknown id yields shared.ErrNotFound.
	RemoveUpload(ctx context.Context, id uuid.UUID, history func(*UploadBatch) *UploadHistory) (*UploadBatch, error)

	FindByID(ctx context.Context, id uuid.UUID) (*UploadBatch, error)

	// FindAll lists batches, newest first
	FindAll(ctx context.Context) ([]*UploadBatch, error)

	// History lists audit entries, newest first
	History(ctx context.Context) ([]*UploadHistory, error)
}

// LookupField is a column offered as a report filter
type LookupField string

const (
	LookupDistributors LookupField = "distributors"
	LookupAgencies     LookupField = "agencies"
	LookupProducts     LookupField = "products"
	LookupSalesReps    LookupField = "sales-reps"
	LookupCustomers    LookupField = "customers"
	LookupAreas        LookupField = "areas"
)

// LookupFields lists every distinct-value lookup
var LookupFields = []LookupField{
	LookupDistributors, LookupAgencies, LookupProducts,
	LookupSalesReps, LookupCustomers, LookupAreas,
}

// Valid reports whether f names a known lookup
func (f LookupField) Valid() bool {
	for _, known := range LookupFields {
		if f == known {
			return true
		}
	}
	return false
}

// Month is a row of the month reference table
type Month struct {
	ID   int
	Name string
}

// LookupRepository serves reference data for the report filters.
type LookupRepository interface {
	// Distinct returns the sorted non-empty values of field
	Distinct(ctx context.Context, field LookupField) ([]string, error)

	// Years returns the distinct transaction years, ascending
	Years(ctx context.Context) ([]int, error)

	Months(ctx context.Context) ([]Month, error)
}
