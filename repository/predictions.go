package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/forecast"
)

// PredictionFilter narrows a prediction listing.
type PredictionFilter struct {
	Location  string
	Status    string
	RiskLevel forecast.RiskLevel
	Limit     int
}

// PredictionStats are the aggregate counters of stored predictions.
type PredictionStats struct {
	Total           int64   `json:"total"`
	Active          int64   `json:"active"`
	Resolved        int64   `json:"resolved"`
	Critical        int64   `json:"critical"`
	High            int64   `json:"high"`
	AverageAccuracy float64 `json:"averageAccuracy"`
}

type PredictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Create(ctx context.Context, p *models.Prediction) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PredictionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Prediction, error) {
	var p models.Prediction
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PredictionRepository) Save(ctx context.Context, p *models.Prediction) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// List returns predictions ordered by prediction date.
func (r *PredictionRepository) List(ctx context.Context, f PredictionFilter) ([]models.Prediction, error) {
	q := r.db.WithContext(ctx).Order("prediction_date ASC")
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.RiskLevel != "" {
		q = q.Where("risk_level = ?", f.RiskLevel)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []models.Prediction
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Alerts returns active High and Critical predictions, riskiest first.
func (r *PredictionRepository) Alerts(ctx context.Context, limit int) ([]models.Prediction, error) {
	var out []models.Prediction
	err := r.db.WithContext(ctx).
		Where("status = ? AND risk_level IN ?", models.PredictionActive, []forecast.RiskLevel{forecast.RiskHigh, forecast.RiskCritical}).
		Order("risk_score DESC").
		Order("prediction_date ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *PredictionRepository) Stats(ctx context.Context) (*PredictionStats, error) {
	var st PredictionStats
	db := r.db.WithContext(ctx).Model(&models.Prediction{})
	counts := []struct {
		dst   *int64
		query string
		arg   interface{}
	}{
		{&st.Active, "status = ?", models.PredictionActive},
		{&st.Resolved, "status = ?", models.PredictionResolved},
		{&st.Critical, "risk_level = ?", forecast.RiskCritical},
		{&st.High, "risk_level = ?", forecast.RiskHigh},
	}
	if err := db.Session(&gorm.Session{}).Count(&st.Total).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		if err := db.Session(&gorm.Session{}).Where(c.query, c.arg).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	err := db.Session(&gorm.Session{}).
		Where("status = ? AND actual_outcome->>'predictionAccuracy' IS NOT NULL", models.PredictionResolved).
		Select("COALESCE(ROUND(AVG((actual_outcome->>'predictionAccuracy')::numeric), 2), 0)").
		Scan(&st.AverageAccuracy).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}
