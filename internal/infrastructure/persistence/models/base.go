package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/salesreport/backend/internal/domain/shared"
)

// BaseModel provides the identity columns of uuid-keyed tables.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
}

// All lists every model, in dependency order, for AutoMigrate
func All() []any {
	return []any{
		&UserModel{},
		&UploadBatchModel{},
		&UploadHistoryModel{},
		&SalesRecordModel{},
		&MonthModel{},
	}
}
