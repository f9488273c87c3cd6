package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResumeDraft is a named CV working copy. The editor state is an opaque JSON
// blob the server stores verbatim and never interprets.
type ResumeDraft struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Name      string         `json:"name" gorm:"not null"`
	Data      map[string]any `json:"data" gorm:"serializer:json"`
	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (r *ResumeDraft) TableName() string { return "resume_drafts" }

func (r *ResumeDraft) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
