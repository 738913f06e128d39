package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModel is the base model for all entities: a UUID primary key
// plus creation and update timestamps kept in UTC.
type DefaultModel struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID for the resource.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) error {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	return nil
}

// RecordID, SetRecordID and Stamp implement the record contract of the
// local key-space store, which manages ids and timestamps itself.
func (m *DefaultModel) RecordID() uuid.UUID { return m.ID }

func (m *DefaultModel) SetRecordID(id uuid.UUID) { m.ID = id }

// Stamp sets the timestamps. A zero created time keeps the existing one.
func (m *DefaultModel) Stamp(created, updated time.Time) {
	if !created.IsZero() {
		m.CreatedAt = created
	}
	m.UpdatedAt = updated
}
