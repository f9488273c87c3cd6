package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Certificate struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `json:"userId" gorm:"type:uuid;index;not null"`
	FileData   []byte     `json:"fileData,omitempty" gorm:"type:bytea"` // omitted from list selects
	Size       int64      `json:"size"`                                 // bytes, captured at upload
	CertName   string     `json:"certName" gorm:"not null"`
	CertType   string     `json:"certType"`
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

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
