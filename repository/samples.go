package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/quality"
)

// SampleFilter narrows a sample query. A zero Limit means no limit.
type SampleFilter struct {
	Location  string
	Status    quality.Status
	From      *time.Time
	To        *time.Time
	Limit     int
	Ascending bool
}

type SampleRepository struct {
	db *gorm.DB
}

func NewSampleRepository(db *gorm.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

func (r *SampleRepository) Create(ctx context.Context, s *models.Sample) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SampleRepository) CreateBatch(ctx context.Context, samples []models.Sample) error {
	if len(samples) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(samples, 100).Error
}

func (r *SampleRepository) Get(ctx context.Context, id uuid.UUID) (*models.Sample, error) {
	var s models.Sample
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *SampleRepository) Save(ctx context.Context, s *models.Sample) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SampleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Sample{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SampleRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Sample{}).Count(&n).Error
	return n, err
}

// Find returns samples matching f ordered by timestamp.
func (r *SampleRepository) Find(ctx context.Context, f SampleFilter) ([]models.Sample, error) {
	q := r.db.WithContext(ctx).Model(&models.Sample{})
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("timestamp >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("timestamp <= ?", *f.To)
	}
	if f.Ascending {
		q = q.Order("timestamp ASC")
	} else {
		q = q.Order("timestamp DESC")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var samples []models.Sample
	if err := q.Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}
