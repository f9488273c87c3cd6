package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `json:"userId" gorm:"type:uuid;index;not null"`
	DocID      string     `json:"docId"` // external document number (passport no., licence no., ...)
	FileData   []byte     `json:"fileData,omitempty" gorm:"type:bytea"` // omitted from list selects
	Size       int64      `json:"size"`
	DocName    string     `json:"docName" gorm:"not null"`
	DocType    string     `json:"docType"`
	Category   string     `json:"category"`
	IssuedBy   string     `json:"issuedBy"`
	Status     Status     `json:"status" gorm:"type:text;default:'VALID'"`
	Expiry     *time.Time `json:"expiry"` // nil means unlimited validity
	IssueDate  *time.Time `json:"issueDate"`
	UploadDate time.Time  `json:"uploadDate"`
	Hidden     bool       `json:"hidden" gorm:"default:false"`
	Archived   bool       `json:"archived" gorm:"default:false"`
	CreatedAt  time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
