package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is a structured postal address stored as a JSON column.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Postal  string `json:"postal,omitempty"`
	Country string `json:"country"`
}

type NextOfKin struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

type PhysicalDescription struct {
	HeightCM            int    `json:"heightCm,omitempty"`
	WeightKG            int    `json:"weightKg,omitempty"`
	EyeColor            string `json:"eyeColor,omitempty"`
	HairColor           string `json:"hairColor,omitempty"`
	DistinguishingMarks string `json:"distinguishingMarks,omitempty"`
}

// Profile doubles as the user record: registration creates it and the
// password hash lives here, never serialized to callers.
type Profile struct {
	ID           uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	Email        string              `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string              `json:"-" gorm:"not null"`
	DOB          *time.Time          `json:"dob"`
	Gender       string              `json:"gender"`
	Phone        string              `json:"phone"`
	JobTitle     string              `json:"jobTitle"`
	Bio          string              `json:"bio"`
	AvatarURL    string              `json:"avatarUrl"`
	Skills       []string            `json:"skills" gorm:"serializer:json"`
	Address      Address             `json:"address" gorm:"serializer:json"`
	NextOfKin    NextOfKin           `json:"nextOfKin" gorm:"serializer:json"`
	Physical     PhysicalDescription `json:"physicalDescription" gorm:"serializer:json;column:physical_description"`
	CreatedAt    time.Time           `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time           `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
