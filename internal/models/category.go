package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryScopeDocument    = "document"
	CategoryScopeCertificate = "certificate"
)

// Category is a labeling taxonomy entry. System rows (IsSystem, nil UserID)
// are shared defaults seeded by migration and cannot be deleted.
type Category struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID `json:"userId" gorm:"type:uuid;index"` // nil for system defaults
	Label     string     `json:"label" gorm:"not null"`
	Color     string     `json:"color"`
	Icon      string     `json:"icon"`
	Pattern   string     `json:"pattern"` // match/suggestion hint, e.g. "stcw|training|safety"
	Scope     string     `json:"scope" gorm:"default:'document';index"`
	IsSystem  bool       `json:"isSystem" gorm:"default:false"`
	CreatedAt time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
