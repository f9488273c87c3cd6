package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SeaTimeLog struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	IMO        int64     `json:"imo"`
	CallSign   string    `json:"callSign"`
	Flag       string    `json:"flag"`
	VesselName string    `json:"vesselName" gorm:"not null"`
	VesselType string    `json:"vesselType"`
	DWT        float64   `json:"dwt"` // dead-weight tonnage
	Company    string    `json:"company"`
	Department string    `json:"department"`
	Rank       string    `json:"rank"`
	MainEngine string    `json:"mainEngine"`
	PowerKW    float64   `json:"powerKw" gorm:"column:power_kw"` // stored as BHP before migration 00002
	SignOn     time.Time `json:"signOn"`
	SignOff    time.Time `json:"signOff"`
	UploadDate time.Time `json:"uploadDate"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (s *SeaTimeLog) TableName() string { return "sea_time_logs" }

func (s *SeaTimeLog) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
