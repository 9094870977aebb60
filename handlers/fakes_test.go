package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/repository"
	"p9e.in/aquasure/services"
)

type memSamples struct {
	rows []models.Sample
}

func (m *memSamples) Create(_ context.Context, s *models.Sample) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.rows = append(m.rows, *s)
	return nil
}

func (m *memSamples) Get(_ context.Context, id uuid.UUID) (*models.Sample, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			s := m.rows[i]
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memSamples) Save(_ context.Context, s *models.Sample) error {
	for i := range m.rows {
		if m.rows[i].ID == s.ID {
			m.rows[i] = *s
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memSamples) Delete(_ context.Context, id uuid.UUID) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memSamples) Find(_ context.Context, f repository.SampleFilter) ([]models.Sample, error) {
	var out []models.Sample
	for _, s := range m.rows {
		if f.Location != "" && s.Location != f.Location {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.Ascending {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

type memLocations struct {
	rows []models.Location
}

func (m *memLocations) RecordSample(_ context.Context, name string, at time.Time, qi int) error {
	for i := range m.rows {
		if m.rows[i].Name == name {
			l := &m.rows[i]
			l.AverageQualityIndex = (l.AverageQualityIndex*float64(l.SampleCount) + float64(qi)) / float64(l.SampleCount+1)
			l.SampleCount++
			l.LastSampleDate = &at
			return nil
		}
	}
	m.rows = append(m.rows, models.Location{ID: uuid.New(), Name: name, IsActive: true, SampleCount: 1, AverageQualityIndex: float64(qi), LastSampleDate: &at})
	return nil
}

func (m *memLocations) List(context.Context, bool) ([]models.Location, error) {
	return m.rows, nil
}

func (m *memLocations) UpdateDetails(_ context.Context, name string, d repository.LocationDetails) (*models.Location, error) {
	for i := range m.rows {
		if m.rows[i].Name == name {
			d.Apply(&m.rows[i])
			l := m.rows[i]
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memCharts struct {
	rows []models.ControlChart
}

func (m *memCharts) Upsert(_ context.Context, c *models.ControlChart) error {
	if c.Code == "" {
		code, err := models.NewChartCode()
		if err != nil {
			return err
		}
		c.Code = code
	}
	m.rows = append(m.rows, *c)
	return nil
}

func (m *memCharts) GetByCode(_ context.Context, code string) (*models.ControlChart, error) {
	for i := range m.rows {
		if m.rows[i].Code == code {
			c := m.rows[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memCharts) List(context.Context, repository.ChartFilter) ([]models.ControlChart, error) {
	return m.rows, nil
}

type memPredictions struct {
	rows []models.Prediction
}

func (m *memPredictions) Create(_ context.Context, p *models.Prediction) error {
	p.ID = uuid.New()
	m.rows = append(m.rows, *p)
	return nil
}

func (m *memPredictions) Get(_ context.Context, id uuid.UUID) (*models.Prediction, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			p := m.rows[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPredictions) Save(_ context.Context, p *models.Prediction) error {
	for i := range m.rows {
		if m.rows[i].ID == p.ID {
			m.rows[i] = *p
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memPredictions) List(context.Context, repository.PredictionFilter) ([]models.Prediction, error) {
	return m.rows, nil
}

func (m *memPredictions) Alerts(context.Context, int) ([]models.Prediction, error) {
	var out []models.Prediction
	for _, p := range m.rows {
		if p.Status == models.PredictionActive && p.RiskLevel.Alerting() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPredictions) Stats(context.Context) (*repository.PredictionStats, error) {
	return &repository.PredictionStats{Total: int64(len(m.rows))}, nil
}

type memArchiver struct {
	objects map[string][]byte
}

func (m *memArchiver) Upload(_ context.Context, object, _ string, data []byte) (string, error) {
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[object] = data
	return "gs://test-bucket/" + object, nil
}

// testEnv wires every handler against in-memory stores.
type testEnv struct {
	samples     *memSamples
	locations   *memLocations
	charts      *memCharts
	predictions *memPredictions
	archiver    *memArchiver

	sampleHandler     *SampleHandler
	spcHandler        *SPCHandler
	qcHandler         *QCHandler
	predictionHandler *PredictionHandler
	locationHandler   *LocationHandler
}

func newTestEnv() *testEnv {
	e := &testEnv{
		samples:     &memSamples{},
		locations:   &memLocations{},
		charts:      &memCharts{},
		predictions: &memPredictions{},
		archiver:    &memArchiver{},
	}
	sampleSvc := services.NewSampleService(e.samples, e.locations, nil, 0)
	e.sampleHandler = NewSampleHandler(sampleSvc, e.archiver)
	e.spcHandler = NewSPCHandler(services.NewSPCService(e.samples, e.charts, nil, 0), e.archiver)
	e.qcHandler = NewQCHandler(services.NewQCService(e.samples, e.locations, 0))
	e.predictionHandler = NewPredictionHandler(services.NewPredictionService(e.samples, e.predictions, nil, nil))
	e.locationHandler = NewLocationHandler(sampleSvc)
	return e
}

var baseTime = time.Date(2024, 9, 7, 8, 0, 0, 0, time.UTC)

// seed stores scored samples one hour apart.
func (e *testEnv) seed(location string, n int, reading [4]float64) {
	for i := 0; i < n; i++ {
		s := models.Sample{
			ID:        uuid.New(),
			Location:  location,
			Timestamp: baseTime.Add(time.Duration(len(e.samples.rows)) * time.Hour),
			PH:        reading[0],
			TDS:       reading[1],
			Turbidity: reading[2],
			Chlorine:  reading[3],
		}
		s.Apply()
		e.samples.rows = append(e.samples.rows, s)
	}
}
