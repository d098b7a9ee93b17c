package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salesreport/backend/internal/domain/sales"
	"github.com/salesreport/backend/internal/domain/shared"
	"github.com/salesreport/backend/internal/infrastructure/persistence/models"
)

// DefaultInsertBatchSize bounds the rows sent per INSERT statement
const DefaultInsertBatchSize = 500

// GormSheetRepository implements sales.SheetRepository using GORM
type GormSheetRepository struct {
	db        *gorm.DB
	batchSize int
}

// NewGormSheetRepository creates a repository; batchSize <= 0 uses the default
func NewGormSheetRepository(db *gorm.DB, batchSize int) *GormSheetRepository {
	if batchSize <= 0 {
		batchSize = DefaultInsertBatchSize
	}
	return &GormSheetRepository{db: db, batchSize: batchSize}
}

// SaveUpload inserts the batch, its lines and the history entry in one transaction
func (r *GormSheetRepository) SaveUpload(ctx context.Context, batch *sales.UploadBatch, lines []sales.Line, history *sales.UploadHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.UploadBatchModelFromDomain(batch)).Error; err != nil {
			return fmt.Errorf("insert upload batch: %w", err)
		}

		if len(lines) > 0 {
			rows := make([]*models.SalesRecordModel, len(lines))
			for i, l := range lines {
				rows[i] = models.SalesRecordModelFromLine(batch.ID, l)
			}
			if err := tx.CreateInBatches(rows, r.batchSize).Error; err != nil {
				return fmt.Errorf("insert sales records: %w", err)
			}
		}

		h := models.UploadHistoryModelFromDomain(history)
		if err := tx.Create(h).Error; err != nil {
			return fmt.Errorf("insert upload history: %w", err)
		}
		history.ID = h.ID
		return nil
	})
}

// RemoveUpload deletes the batch and its records, then appends history
func (r *GormSheetRepository) RemoveUpload(ctx context.Context, id uuid.UUID, history func(*sales.UploadBatch) *sales.UploadHistory) (*sales.UploadBatch, error) {
	var removed *sales.UploadBatch
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.UploadBatchModel
		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound.WithMessage("Upload not found")
			}
			return err
		}
		removed = model.ToDomain()

		if err := tx.Where("batch_id = ?", id).Delete(&models.SalesRecordModel{}).Error; err != nil {
			return fmt.Errorf("delete sales records: %w", err)
		}
		if err := tx.Delete(&model).Error; err != nil {
			return fmt.Errorf("delete upload batch: %w", err)
		}

		if history != nil {
			if err := tx.Create(models.UploadHistoryModelFromDomain(history(removed))).Error; err != nil {
				return fmt.Errorf("insert upload history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// FindByID finds a batch by ID
func (r *GormSheetRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.UploadBatch, error) {
	var model models.UploadBatchModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists batches, newest first
func (r *GormSheetRepository) FindAll(ctx context.Context) ([]*sales.UploadBatch, error) {
	var rows []models.UploadBatchModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	batches := make([]*sales.UploadBatch, len(rows))
	for i := range rows {
		batches[i] = rows[i].ToDomain()
	}
	return batches, nil
}

// History lists audit entries, newest first
func (r *GormSheetRepository) History(ctx context.Context) ([]*sales.UploadHistory, error) {
	var rows []models.UploadHistoryModel
	if err := r.db.WithContext(ctx).Order("changed_on DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]*sales.UploadHistory, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// CountRecords returns the stored lines of a batch
func (r *GormSheetRepository) CountRecords(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.SalesRecordModel{}).Where("batch_id = ?", id).Count(&n).Error
	return n, err
}
