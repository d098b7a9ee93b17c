package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/salesreport/backend/internal/domain/sales"
)

type MockSheetRepository struct {
	mock.Mock
}

func (m *MockSheetRepository) SaveUpload(ctx context.Context, batch *sales.UploadBatch, lines []sales.Line, history *sales.UploadHistory) error {
	return m.Called(ctx, batch, lines, history).Error(0)
}

func (m *MockSheetRepository) RemoveUpload(ctx context.Context, id uuid.UUID, history func(*sales.UploadBatch) *sales.UploadHistory) (*sales.UploadBatch, error) {
	args := m.Called(ctx, id, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.UploadBatch), args.Error(1)
}

func (m *MockSheetRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.UploadBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.UploadBatch), args.Error(1)
}

func (m *MockSheetRepository) FindAll(ctx context.Context) ([]*sales.UploadBatch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sales.UploadBatch), args.Error(1)
}

func (m *MockSheetRepository) History(ctx context.Context) ([]*sales.UploadHistory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sales.UploadHistory), args.Error(1)
}

type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) Distinct(ctx context.Context, field sales.LookupField) ([]string, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLookupRepository) Years(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockLookupRepository) Months(ctx context.Context) ([]sales.Month, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Month), args.Error(1)
}

type MockLookupCache struct {
	mock.Mock
}

func (m *MockLookupCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockLookupCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockLookupCache) InvalidateAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockLookupCache) Close() error {
	return nil
}
