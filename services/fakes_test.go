package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/forecast"
	"p9e.in/aquasure/repository"
)

type fakeSamples struct {
	rows []models.Sample
}

func (f *fakeSamples) Create(_ context.Context, s *models.Sample) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.rows = append(f.rows, *s)
	return nil
}

func (f *fakeSamples) Get(_ context.Context, id uuid.UUID) (*models.Sample, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			s := f.rows[i]
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSamples) Save(_ context.Context, s *models.Sample) error {
	for i := range f.rows {
		if f.rows[i].ID == s.ID {
			f.rows[i] = *s
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeSamples) Delete(_ context.Context, id uuid.UUID) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeSamples) Find(_ context.Context, q repository.SampleFilter) ([]models.Sample, error) {
	var out []models.Sample
	for _, s := range f.rows {
		if q.Location != "" && s.Location != q.Location {
			continue
		}
		if q.Status != "" && s.Status != q.Status {
			continue
		}
		if q.From != nil && s.Timestamp.Before(*q.From) {
			continue
		}
		if q.To != nil && s.Timestamp.After(*q.To) {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.Ascending {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

type locationHit struct {
	name string
	qi   int
}

type fakeLocations struct {
	hits []locationHit
}

func (f *fakeLocations) RecordSample(_ context.Context, name string, _ time.Time, qi int) error {
	f.hits = append(f.hits, locationHit{name, qi})
	return nil
}

func (f *fakeLocations) List(context.Context, bool) ([]models.Location, error) {
	var out []models.Location
	for _, h := range f.hits {
		out = append(out, models.Location{Name: h.name})
	}
	return out, nil
}

func (f *fakeLocations) UpdateDetails(_ context.Context, name string, d repository.LocationDetails) (*models.Location, error) {
	for _, h := range f.hits {
		if h.name == name {
			loc := models.Location{Name: name}
			d.Apply(&loc)
			return &loc, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeCharts struct {
	rows []models.ControlChart
}

func (f *fakeCharts) Upsert(_ context.Context, c *models.ControlChart) error {
	for i := range f.rows {
		r := f.rows[i]
		if r.Type == c.Type && r.Parameter == c.Parameter && r.Location == c.Location {
			c.ID, c.Code = r.ID, r.Code
			f.rows[i] = *c
			return nil
		}
	}
	c.ID = uuid.New()
	code, err := models.NewChartCode()
	if err != nil {
		return err
	}
	c.Code = code
	f.rows = append(f.rows, *c)
	return nil
}

func (f *fakeCharts) GetByCode(_ context.Context, code string) (*models.ControlChart, error) {
	for i := range f.rows {
		if f.rows[i].Code == code {
			c := f.rows[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCharts) List(context.Context, repository.ChartFilter) ([]models.ControlChart, error) {
	return f.rows, nil
}

type fakePredictions struct {
	rows  []models.Prediction
	saves int
}

func (f *fakePredictions) Create(_ context.Context, p *models.Prediction) error {
	p.ID = uuid.New()
	f.rows = append(f.rows, *p)
	return nil
}

func (f *fakePredictions) Get(_ context.Context, id uuid.UUID) (*models.Prediction, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			p := f.rows[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePredictions) Save(_ context.Context, p *models.Prediction) error {
	f.saves++
	for i := range f.rows {
		if f.rows[i].ID == p.ID {
			f.rows[i] = *p
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakePredictions) List(_ context.Context, q repository.PredictionFilter) ([]models.Prediction, error) {
	out := f.rows
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakePredictions) Alerts(_ context.Context, limit int) ([]models.Prediction, error) {
	var out []models.Prediction
	for _, p := range f.rows {
		if p.Status == models.PredictionActive && p.RiskLevel.Alerting() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RiskScore > out[j].RiskScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePredictions) Stats(context.Context) (*repository.PredictionStats, error) {
	st := &repository.PredictionStats{Total: int64(len(f.rows))}
	for _, p := range f.rows {
		if p.RiskLevel == forecast.RiskCritical {
			st.Critical++
		}
	}
	return st, nil
}

type fakePublisher struct {
	sent []*models.Prediction
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, p *models.Prediction) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, p)
	return nil
}

func fp(v float64) *float64 { return &v }

var baseTime = time.Date(2024, 9, 7, 8, 0, 0, 0, time.UTC)

// seedSamples stores scored samples one hour apart.
func seedSamples(store *fakeSamples, location string, readings ...[4]float64) {
	for _, r := range readings {
		s := models.Sample{
			Location:  location,
			Timestamp: baseTime.Add(time.Duration(len(store.rows)) * time.Hour),
			PH:        r[0],
			TDS:       r[1],
			Turbidity: r[2],
			Chlorine:  r[3],
		}
		s.Apply()
		s.ID = uuid.New()
		store.rows = append(store.rows, s)
	}
}
