package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/infrastructure/config"
	"github.com/salesreport/backend/internal/infrastructure/printing"
)

// Storage backends accepted by config.StorageConfig.Backend
const (
	BackendFilesystem = "filesystem"
	BackendS3         = "s3"
	BackendMemory     = "memory"
)

// NewDocumentSink builds the configured report sink. The S3 bucket is
// created when missing.
func NewDocumentSink(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (printing.DocumentSink, error) {
	switch cfg.Backend {
	case BackendFilesystem, "":
		return printing.NewFileSystemStorage(&printing.FileSystemStorageConfig{
			BasePath:      cfg.BasePath,
			BaseURL:       cfg.BaseURL,
			RetentionDays: cfg.RetentionDays,
			Logger:        logger,
		})
	case BackendS3:
		sink, err := NewS3DocumentSink(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := sink.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return sink, nil
	case BackendMemory:
		return NewMemorySink(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}
