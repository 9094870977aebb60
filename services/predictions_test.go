package services

import (
	"context"
	"errors"
	"testing"

	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/forecast"
	"p9e.in/aquasure/repository"
)

func repeat(n int, r [4]float64) [][4]float64 {
	out := make([][4]float64, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func TestPredictionServiceGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("location required", func(t *testing.T) {
		svc := NewPredictionService(&fakeSamples{}, &fakePredictions{}, nil, nil)
		if _, err := svc.Generate(ctx, " ", 7); !errors.Is(err, ErrValidation) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("insufficient history", func(t *testing.T) {
		samples := &fakeSamples{}
		seedSamples(samples, "A", repeat(6, [4]float64{7, 300, 0.5, 0.4})...)
		svc := NewPredictionService(samples, &fakePredictions{}, nil, nil)
		if _, err := svc.Generate(ctx, "A", 7); !errors.Is(err, forecast.ErrInsufficientData) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("falls back to global data", func(t *testing.T) {
		samples := &fakeSamples{}
		seedSamples(samples, "A", repeat(3, [4]float64{7, 300, 0.5, 0.4})...)
		seedSamples(samples, "B", repeat(7, [4]float64{7, 300, 0.5, 0.4})...)
		store := &fakePredictions{}
		svc := NewPredictionService(samples, store, nil, nil)

		p, err := svc.Generate(ctx, "A", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.DataSource != models.SourceGlobal || p.Location != "A" || p.RiskLevel != forecast.RiskLow {
			t.Errorf("prediction = %+v", p)
		}
		if len(store.rows) != 1 || p.Status != models.PredictionActive {
			t.Error("prediction not stored as active")
		}
	})

	t.Run("critical risk publishes an alert", func(t *testing.T) {
		samples := &fakeSamples{}
		seedSamples(samples, "Sitapura", repeat(10, [4]float64{9.2, 650, 0.8, 0.15})...)
		store, pub := &fakePredictions{}, &fakePublisher{}
		svc := NewPredictionService(samples, store, pub, nil)

		p, err := svc.Generate(ctx, "Sitapura", 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.DataSource != models.SourceLocation || p.RiskScore != 75 || p.RiskLevel != forecast.RiskCritical {
			t.Errorf("risk = %d %s", p.RiskScore, p.RiskLevel)
		}
		if len(pub.sent) != 1 || !p.AlertSent || !store.rows[0].AlertSent {
			t.Error("alert not published and flagged")
		}
		if len(p.RecommendedActions) == 0 || p.RecommendedActions[0].Priority != forecast.PriorityCritical {
			t.Errorf("recommendations = %+v", p.RecommendedActions)
		}
	})

	t.Run("publish failure keeps the prediction", func(t *testing.T) {
		samples := &fakeSamples{}
		seedSamples(samples, "Sitapura", repeat(10, [4]float64{9.2, 650, 0.8, 0.15})...)
		store := &fakePredictions{}
		svc := NewPredictionService(samples, store, &fakePublisher{err: errors.New("broker down")}, nil)

		p, err := svc.Generate(ctx, "Sitapura", 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.AlertSent || len(store.rows) != 1 {
			t.Error("failed alert must leave the flag unset")
		}
	})
}

func TestPredictionServiceOutcome(t *testing.T) {
	ctx := context.Background()
	samples := &fakeSamples{}
	seedSamples(samples, "A", repeat(7, [4]float64{7, 300, 0.5, 0.4})...)
	store := &fakePredictions{}
	svc := NewPredictionService(samples, store, nil, nil)

	p, err := svc.Generate(ctx, "A", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.RecordOutcome(ctx, p.ID, OutcomeInput{ActualQualityIndex: fp(96)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc, ok := got.Accuracy(); !ok || acc != 96 {
		t.Errorf("accuracy = %v, %v", acc, ok)
	}
	if got.Status != models.PredictionResolved {
		t.Errorf("status = %s", got.Status)
	}

	if _, err := svc.RecordOutcome(ctx, p.ID, OutcomeInput{}); !errors.Is(err, models.ErrAlreadyResolved) {
		t.Errorf("second outcome error = %v", err)
	}

	list, err := svc.List(ctx, repository.PredictionFilter{Limit: 500})
	if err != nil || len(list) != 1 {
		t.Errorf("list = %d, %v", len(list), err)
	}
}

func TestPredictionServiceAlerts(t *testing.T) {
	ctx := context.Background()
	store := &fakePredictions{rows: []models.Prediction{
		{Location: "A", RiskLevel: forecast.RiskHigh, RiskScore: 55, Status: models.PredictionActive},
		{Location: "B", RiskLevel: forecast.RiskCritical, RiskScore: 90, Status: models.PredictionActive},
		{Location: "C", RiskLevel: forecast.RiskLow, RiskScore: 10, Status: models.PredictionActive},
		{Location: "D", RiskLevel: forecast.RiskCritical, RiskScore: 95, Status: models.PredictionResolved},
	}}
	svc := NewPredictionService(&fakeSamples{}, store, nil, nil)

	alerts, err := svc.ActiveAlerts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alerts) != 2 || alerts[0].Location != "B" || alerts[1].Location != "A" {
		t.Errorf("alerts = %+v", alerts)
	}
}
