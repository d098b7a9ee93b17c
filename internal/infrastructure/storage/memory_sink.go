package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/salesreport/backend/internal/infrastructure/printing"
)

// MemorySink keeps documents in process. It backs tests and the "memory"
// storage backend for short-lived deployments.
type MemorySink struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemorySink creates an empty MemorySink
func NewMemorySink() *MemorySink {
	return &MemorySink{docs: make(map[string][]byte)}
}

// Store keeps a copy of the data under the document name
func (m *MemorySink) Store(ctx context.Context, req *printing.StoreRequest) (*printing.StoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, printing.NewRenderError(printing.ErrCodeStorageFailed, "operation cancelled", err)
	}
	if req == nil || req.Name == "" || len(req.Data) == 0 {
		return nil, printing.NewRenderError(printing.ErrCodeStorageFailed, "invalid store request", nil)
	}

	m.mu.Lock()
	m.docs[req.Name] = append([]byte(nil), req.Data...)
	m.mu.Unlock()

	return &printing.StoreResult{
		Path: req.Name,
		URL:  "memory://" + req.Name,
		Size: int64(len(req.Data)),
	}, nil
}

// Open returns a reader over a stored document
func (m *MemorySink) Open(_ context.Context, path string) (io.ReadCloser, error) {
	m.mu.RLock()
	data, ok := m.docs[path]
	m.mu.RUnlock()
	if !ok {
		return nil, printing.NewRenderError(printing.ErrCodeNotFound, "document not found", nil)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete forgets a document
func (m *MemorySink) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	delete(m.docs, path)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored documents
func (m *MemorySink) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

var _ printing.DocumentSink = (*MemorySink)(nil)
