package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is the single persisted entity. IDs are assigned server-side and the
// row is removed outright on delete, so there is no gorm.Model embed (no
// DeletedAt column, no soft-delete semantics).
type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"size:255;not null;index"`
	Completed bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`
}

// BeforeCreate assigns the id when the caller has not. The database never
// generates ids; the server is the source of truth for them.
func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
