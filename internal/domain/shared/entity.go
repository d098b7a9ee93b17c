package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and creation time shared by stored entities.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

// NewBaseEntity stamps a fresh id at the given instant.
func NewBaseEntity(now time.Time) BaseEntity {
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
	}
}
