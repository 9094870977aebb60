package models

import (
	"time"

	"github.com/google/uuid"
)

// Location types.
const (
	LocationResidential = "Residential"
	LocationCommercial  = "Commercial"
	LocationIndustrial  = "Industrial"
	LocationPublic      = "Public"
	LocationOther       = "Other"
)

// Location is a sampling point. Its statistics are maintained on ingestion.
type Location struct {
	ID                  uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                string     `gorm:"uniqueIndex;not null"                            json:"name"`
	Address             string     `json:"address,omitempty"`
	Latitude            *float64   `json:"latitude,omitempty"`
	Longitude           *float64   `json:"longitude,omitempty"`
	Type                string     `gorm:"default:Public"                                  json:"type"`
	IsActive            bool       `gorm:"default:true"                                    json:"isActive"`
	LastSampleDate      *time.Time `json:"lastSampleDate,omitempty"`
	SampleCount         int        `gorm:"default:0"                                       json:"sampleCount"`
	AverageQualityIndex float64    `gorm:"default:0"                                       json:"averageQualityIndex"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// HasCoordinates reports whether the location can be placed on a map.
func (l *Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
