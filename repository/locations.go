package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"p9e.in/aquasure/models"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// RecordSample upserts the location row and folds one quality index into its
// running average.
func (r *LocationRepository) RecordSample(ctx context.Context, name string, at time.Time, qualityIndex int) error {
	loc := models.Location{
		Name:                name,
		Type:                models.LocationPublic,
		IsActive:            true,
		LastSampleDate:      &at,
		SampleCount:         1,
		AverageQualityIndex: float64(qualityIndex),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"average_quality_index": gorm.Expr("(locations.average_quality_index * locations.sample_count + ?) / (locations.sample_count + 1)", qualityIndex),
			"sample_count":          gorm.Expr("locations.sample_count + 1"),
			"last_sample_date":      gorm.Expr("GREATEST(locations.last_sample_date, ?)", at),
			"updated_at":            time.Now(),
		}),
	}).Create(&loc).Error
}

// Refresh rebuilds every location's statistics from the samples table.
func (r *LocationRepository) Refresh(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO locations (name, type, is_active, last_sample_date, sample_count, average_quality_index, created_at, updated_at)
		SELECT location, ?, true, MAX(timestamp), COUNT(*), AVG(quality_index), NOW(), NOW()
		FROM samples WHERE deleted_at IS NULL GROUP BY location
		ON CONFLICT (name) DO UPDATE SET
			last_sample_date = EXCLUDED.last_sample_date,
			sample_count = EXCLUDED.sample_count,
			average_quality_index = EXCLUDED.average_quality_index,
			updated_at = NOW()`, models.LocationPublic).Error
}

func (r *LocationRepository) List(ctx context.Context, activeOnly bool) ([]models.Location, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var locs []models.Location
	if err := q.Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

// LocationDetails are the descriptive fields of a location; nil fields are
// left unchanged.
type LocationDetails struct {
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Type      *string  `json:"type,omitempty"`
	IsActive  *bool    `json:"isActive,omitempty"`
}

// UpdateDetails changes the descriptive fields of the named location.
func (r *LocationRepository) UpdateDetails(ctx context.Context, name string, d LocationDetails) (*models.Location, error) {
	var loc models.Location
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&loc).Error; err != nil {
		return nil, notFound(err)
	}
	d.Apply(&loc)
	if err := r.db.WithContext(ctx).Save(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// Apply copies the set fields onto loc.
func (d LocationDetails) Apply(loc *models.Location) {
	if d.Address != nil {
		loc.Address = *d.Address
	}
	if d.Latitude != nil {
		loc.Latitude = d.Latitude
	}
	if d.Longitude != nil {
		loc.Longitude = d.Longitude
	}
	if d.Type != nil {
		loc.Type = *d.Type
	}
	if d.IsActive != nil {
		loc.IsActive = *d.IsActive
	}
}
