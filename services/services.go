// Package services orchestrates fetch, compute and persist for each domain
// area. It knows nothing about HTTP.
package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/repository"
)

var (
	// ErrValidation marks caller input that failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is the store's not-found error.
	ErrNotFound = repository.ErrNotFound
)

// DefaultQueryLimit caps analytics sample queries when no limit is configured.
const DefaultQueryLimit = 1000

type SampleStore interface {
	Create(ctx context.Context, s *models.Sample) error
	Get(ctx context.Context, id uuid.UUID) (*models.Sample, error)
	Save(ctx context.Context, s *models.Sample) error
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, f repository.SampleFilter) ([]models.Sample, error)
}

type LocationStore interface {
	RecordSample(ctx context.Context, name string, at time.Time, qualityIndex int) error
	List(ctx context.Context, activeOnly bool) ([]models.Location, error)
	UpdateDetails(ctx context.Context, name string, d repository.LocationDetails) (*models.Location, error)
}

type ChartStore interface {
	Upsert(ctx context.Context, c *models.ControlChart) error
	GetByCode(ctx context.Context, code string) (*models.ControlChart, error)
	List(ctx context.Context, f repository.ChartFilter) ([]models.ControlChart, error)
}

type PredictionStore interface {
	Create(ctx context.Context, p *models.Prediction) error
	Get(ctx context.Context, id uuid.UUID) (*models.Prediction, error)
	Save(ctx context.Context, p *models.Prediction) error
	List(ctx context.Context, f repository.PredictionFilter) ([]models.Prediction, error)
	Alerts(ctx context.Context, limit int) ([]models.Prediction, error)
	Stats(ctx context.Context) (*repository.PredictionStats, error)
}

// AlertPublisher delivers High and Critical predictions downstream.
type AlertPublisher interface {
	Publish(ctx context.Context, p *models.Prediction) error
}

// Window is an optional time range on sample queries.
type Window struct {
	Location string
	From     *time.Time
	To       *time.Time
}

func (w Window) filter(limit int, ascending bool) repository.SampleFilter {
	return repository.SampleFilter{
		Location:  w.Location,
		From:      w.From,
		To:        w.To,
		Limit:     limit,
		Ascending: ascending,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
