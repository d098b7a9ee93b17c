package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DocumentSink stores finished documents and hands them back for download.
type DocumentSink interface {
	// Store persists the whole document or nothing.
	Store(ctx context.Context, req *StoreRequest) (*StoreResult, error)
	// Open returns a reader for a stored document.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes a stored document. Deleting a missing document is not an error.
	Delete(ctx context.Context, path string) error
}

// StoreRequest contains the parameters for storing a document
type StoreRequest struct {
	// Name is the file name, e.g. Distributor_Agency_Product_Report_1700000000000.pdf
	Name string
	// ContentType defaults to application/pdf
	ContentType string
	Data        []byte
}

// StoreResult contains the result of storing a document
type StoreResult struct {
	// Path is the storage path (relative to base, or the object key)
	Path string
	URL  string
	Size int64
}

// FileSystemStorageConfig contains configuration for file system storage
type FileSystemStorageConfig struct {
	// BasePath is the root directory for generated reports
	// Default: ./data/reports
	BasePath string
	// BaseURL is the URL prefix for accessing reports
	BaseURL string
	// RetentionDays is how long CleanupOlderThan keeps documents (0 = forever)
	RetentionDays int
	Logger        *zap.Logger
}

// FileSystemStorage stores documents on the local file system
type FileSystemStorage struct {
	config *FileSystemStorageConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewFileSystemStorage creates a file system document sink
func NewFileSystemStorage(config *FileSystemStorageConfig) (*FileSystemStorage, error) {
	if config == nil {
		config = &FileSystemStorageConfig{}
	}
	if config.BasePath == "" {
		config.BasePath = "./data/reports"
	}
	if config.BaseURL == "" {
		config.BaseURL = "/reports"
	}

	if err := os.MkdirAll(config.BasePath, 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed,
			fmt.Sprintf("failed to create storage directory: %s", config.BasePath), err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileSystemStorage{
		config: config,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Store writes the document under {base}/{year}/{month}/{name}.
// Data goes to a temporary file first and is renamed into place only after a
// complete write, so a failed store leaves nothing behind.
func (s *FileSystemStorage) Store(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	if req == nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "store request is nil", nil)
	}
	if req.Name == "" || req.Name != filepath.Base(req.Name) || containsDotDot(req.Name) {
		return nil, NewRenderError(ErrCodeStorageFailed, "invalid document name", nil)
	}
	if len(req.Data) == 0 {
		return nil, NewRenderError(ErrCodeStorageFailed, "document data is empty", nil)
	}

	now := s.now()
	relDir := filepath.Join(fmt.Sprintf("%d", now.Year()), fmt.Sprintf("%02d", now.Month()))
	dirPath := filepath.Join(s.config.BasePath, relDir)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to create directory", err)
	}

	filePath := filepath.Join(dirPath, req.Name)
	if err := writeFileAtomic(dirPath, filePath, req.Data); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to write document", err)
	}

	relativePath := filepath.Join(relDir, req.Name)
	url := s.GetURL(relativePath)

	s.logger.Info("report stored",
		zap.String("path", filePath),
		zap.Int("size", len(req.Data)),
		zap.String("url", url))

	return &StoreResult{
		Path: relativePath,
		URL:  url,
		Size: int64(len(req.Data)),
	}, nil
}

func writeFileAtomic(dir, target string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// Open retrieves a document by its relative path
func (s *FileSystemStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewRenderError(ErrCodeNotFound, "document not found", err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to open document", err)
	}
	return file, nil
}

// Delete removes a document
func (s *FileSystemStorage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return NewRenderError(ErrCodeStorageFailed, "failed to delete document", err)
	}

	s.logger.Debug("report deleted", zap.String("path", path))
	return nil
}

// resolve maps a relative path to an absolute one under BasePath, rejecting
// anything that would escape it.
func (s *FileSystemStorage) resolve(path string) (string, error) {
	cleanPath := filepath.Clean(path)
	if filepath.IsAbs(cleanPath) || containsDotDot(path) {
		s.logger.Warn("blocked potentially malicious path", zap.String("path", path))
		return "", NewRenderError(ErrCodeStorageFailed, "invalid path", nil)
	}

	fullPath := filepath.Join(s.config.BasePath, cleanPath)
	absBase, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve base path", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to resolve file path", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		s.logger.Warn("path escape attempt blocked",
			zap.String("path", path),
			zap.String("absPath", absPath))
		return "", NewRenderError(ErrCodeStorageFailed, "invalid path", nil)
	}
	return fullPath, nil
}

// CleanupOlderThan removes documents older than age
func (s *FileSystemStorage) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := s.now().Add(-age)
	deleted := 0

	err := filepath.WalkDir(s.config.BasePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".pdf" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err == nil {
				deleted++
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return deleted, NewRenderError(ErrCodeStorageFailed, "cleanup walk failed", err)
	}

	s.logger.Info("report cleanup completed",
		zap.Int("deleted", deleted),
		zap.Duration("age", age))
	return deleted, nil
}

// RetentionDays returns the configured retention, 0 meaning forever.
func (s *FileSystemStorage) RetentionDays() int {
	return s.config.RetentionDays
}

// GetURL returns the accessible URL for a stored document
func (s *FileSystemStorage) GetURL(path string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.BaseURL, "/"), filepath.ToSlash(filepath.Clean(path)))
}

// containsDotDot checks if a path contains ".." components
func containsDotDot(path string) bool {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\' || r == filepath.Separator
	})
	return slices.Contains(parts, "..")
}

var _ DocumentSink = (*FileSystemStorage)(nil)
