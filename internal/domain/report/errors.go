package report

import (
	"fmt"

	"github.com/salesreport/backend/internal/domain/shared"
)

// ErrNoData is returned when the filters select no usable record.
// No document is produced in that case.
var ErrNoData = shared.ErrNoData

// MalformedRecordError describes a record that was skipped during aggregation.
type MalformedRecordError struct {
	Index  int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at index %d: %s", e.Index, e.Reason)
}

// SinkWriteError is returned when a finished document cannot be persisted.
// Whatever was written before the failure is discarded.
type SinkWriteError struct {
	Path string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("write report %q: %v", e.Path, e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}
