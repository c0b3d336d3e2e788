package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base holds the identity and timestamps shared by every entity
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"` // Opaque UUID, immutable
	CreatedAt time.Time `gorm:"not null" json:"created_at"`   // Set once at creation
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`   // Refreshed on every mutation
}

func newBase() Base {
	now := time.Now().UTC()
	return Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// BeforeCreate assigns an id to records built outside the constructors
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Touch refreshes the update timestamp
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}
