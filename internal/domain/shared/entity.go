package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Audit records who created and last changed a record.
type Audit struct {
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
}

// Touch stamps the updater
func (a *Audit) Touch(actorID uuid.UUID) {
	if actorID == uuid.Nil {
		return
	}
	a.UpdatedBy = &actorID
}

// SoftDelete marks a record as deleted by timestamp instead of removing it.
type SoftDelete struct {
	DeletedAt *time.Time
}

// IsDeleted reports whether the record has been soft-deleted
func (s *SoftDelete) IsDeleted() bool {
	return s.DeletedAt != nil
}

// MarkDeleted sets the deletion timestamp; calling it twice keeps the first timestamp
func (s *SoftDelete) MarkDeleted(at time.Time) {
	if s.DeletedAt != nil {
		return
	}
	s.DeletedAt = &at
}
