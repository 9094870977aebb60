package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"p9e.in/aquasure/models"
)

// ChartFilter narrows a chart listing.
type ChartFilter struct {
	Type      string
	Parameter string
	Location  string
}

type ChartRepository struct {
	db *gorm.DB
}

func NewChartRepository(db *gorm.DB) *ChartRepository {
	return &ChartRepository{db: db}
}

// Upsert stores the latest computation for the chart's (type, parameter,
// location) key. The id and code of an existing row are kept and read back
// into c.
func (r *ChartRepository) Upsert(ctx context.Context, c *models.ControlChart) error {
	return r.db.WithContext(ctx).Clauses(clause.Returning{
		Columns: []clause.Column{{Name: "id"}, {Name: "code"}, {Name: "created_at"}},
	}, clause.OnConflict{
		Columns: []clause.Column{{Name: "type"}, {Name: "parameter"}, {Name: "location"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sample_size", "period", "points", "control_limits",
			"process_capability", "violations", "status", "updated_at",
		}),
	}).Create(c).Error
}

func (r *ChartRepository) GetByCode(ctx context.Context, code string) (*models.ControlChart, error) {
	var c models.ControlChart
	if err := r.db.WithContext(ctx).First(&c, "code = ?", code).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *ChartRepository) List(ctx context.Context, f ChartFilter) ([]models.ControlChart, error) {
	q := r.db.WithContext(ctx).Order("updated_at DESC")
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Parameter != "" {
		q = q.Where("parameter = ?", f.Parameter)
	}
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	var charts []models.ControlChart
	if err := q.Find(&charts).Error; err != nil {
		return nil, err
	}
	return charts, nil
}
