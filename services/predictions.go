package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"p9e.in/aquasure/metrics"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/forecast"
	"p9e.in/aquasure/repository"
)

const (
	locationHistory = 100
	globalHistory   = 150
	listLimit       = 50
	alertLimit      = 20
)

// OutcomeInput is what happened once a prediction's horizon passed.
type OutcomeInput struct {
	ActualQualityIndex *float64                `json:"actualQualityIndex"`
	ActualParameters   models.ActualParameters `json:"actualParameters"`
	ActionsTaken       []string                `json:"actionsTaken"`
	ActionsEffective   bool                    `json:"actionsEffective"`
}

type PredictionService struct {
	samples     SampleStore
	predictions PredictionStore
	publisher   AlertPublisher
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewPredictionService wires the service; publisher may be nil.
func NewPredictionService(samples SampleStore, predictions PredictionStore, publisher AlertPublisher, m *metrics.Metrics) *PredictionService {
	return &PredictionService{
		samples:     samples,
		predictions: predictions,
		publisher:   publisher,
		metrics:     m,
		now:         time.Now,
	}
}

// history loads the location's oldest samples, falling back to the global
// dataset when the location has too little history.
func (s *PredictionService) history(ctx context.Context, location string) ([]models.Sample, string, error) {
	samples, err := s.samples.Find(ctx, repository.SampleFilter{Location: location, Limit: locationHistory, Ascending: true})
	if err != nil {
		return nil, "", fmt.Errorf("load samples: %w", err)
	}
	if len(samples) >= forecast.MinSamples {
		return samples, models.SourceLocation, nil
	}

	samples, err = s.samples.Find(ctx, repository.SampleFilter{Limit: globalHistory, Ascending: true})
	if err != nil {
		return nil, "", fmt.Errorf("load samples: %w", err)
	}
	if len(samples) < forecast.MinSamples {
		return nil, "", fmt.Errorf("%w: need at least %d samples to generate a prediction", forecast.ErrInsufficientData, forecast.MinSamples)
	}
	return samples, models.SourceGlobal, nil
}

// Generate forecasts the location daysAhead days out and stores the result.
// High and Critical predictions are published as alerts.
func (s *PredictionService) Generate(ctx context.Context, location string, daysAhead int) (*models.Prediction, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}
	if daysAhead <= 0 {
		daysAhead = forecast.DefaultDaysAhead
	}

	samples, source, err := s.history(ctx, location)
	if err != nil {
		return nil, err
	}
	res, err := forecast.Forecast(models.Observations(samples), daysAhead)
	if err != nil {
		return nil, err
	}

	horizon := s.now().UTC().Add(time.Duration(daysAhead) * 24 * time.Hour)
	p := models.NewPrediction(location, source, horizon, res)
	if err := s.predictions.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("store prediction: %w", err)
	}
	s.metrics.PredictionGenerated(string(p.RiskLevel))

	if p.RiskLevel.Alerting() {
		s.alert(ctx, p)
	}
	return p, nil
}

func (s *PredictionService) alert(ctx context.Context, p *models.Prediction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, p); err != nil {
		log.Printf("❌ Failed to publish alert for %s: %v", p.Location, err)
		s.metrics.AlertPublished(false)
		return
	}
	s.metrics.AlertPublished(true)

	p.AlertSent = true
	if err := s.predictions.Save(ctx, p); err != nil {
		log.Printf("⚠️  Alert sent but flag not stored for prediction %s: %v", p.ID, err)
	}
}

func (s *PredictionService) List(ctx context.Context, f repository.PredictionFilter) ([]models.Prediction, error) {
	if f.Limit <= 0 || f.Limit > listLimit {
		f.Limit = listLimit
	}
	return s.predictions.List(ctx, f)
}

// ActiveAlerts returns active High and Critical predictions, riskiest first.
func (s *PredictionService) ActiveAlerts(ctx context.Context) ([]models.Prediction, error) {
	return s.predictions.Alerts(ctx, alertLimit)
}

// RecordOutcome resolves a prediction once. A second call fails with
// models.ErrAlreadyResolved.
func (s *PredictionService) RecordOutcome(ctx context.Context, id uuid.UUID, in OutcomeInput) (*models.Prediction, error) {
	p, err := s.predictions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = p.Resolve(models.Outcome{
		ActualQualityIndex: in.ActualQualityIndex,
		ActualParameters:   in.ActualParameters,
		ActionsTaken:       in.ActionsTaken,
		ActionsEffective:   in.ActionsEffective,
	})
	if err != nil {
		return nil, err
	}
	if err := s.predictions.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("store outcome: %w", err)
	}
	return p, nil
}

func (s *PredictionService) Stats(ctx context.Context) (*repository.PredictionStats, error) {
	return s.predictions.Stats(ctx)
}
