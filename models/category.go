package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lifecycle status of catalog records. Retired records are kept for
// history but excluded from all catalog reads unless requested.
const (
	StatusActive  = "active"
	StatusRetired = "retired"
)

type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Status    string     `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	Products  []Product  `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	return nil
}
