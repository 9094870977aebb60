package services

import (
	"context"
	"errors"
	"testing"

	"p9e.in/aquasure/pkg/qc"
	"p9e.in/aquasure/pkg/quality"
)

func TestQCServicePareto(t *testing.T) {
	ctx := context.Background()
	samples := &fakeSamples{}
	svc := NewQCService(samples, &fakeLocations{}, 0)

	seedSamples(samples, "A", [4]float64{7.0, 300, 0.5, 0.4})
	clean, err := svc.Pareto(ctx, Window{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clean.Pareto) != 0 || clean.Summary.Message == "" || clean.Summary.TotalSamples != 1 {
		t.Errorf("all-compliant report = %+v", clean)
	}

	seedSamples(samples, "A",
		[4]float64{9.2, 650, 0.8, 0.15}, // pH, TDS, Chlorine
		[4]float64{7.1, 1200, 0.7, 0.4}, // TDS
		[4]float64{7.3, 800, 5.5, 0.35}, // TDS, Turbidity
	)
	report, err := svc.Pareto(ctx, Window{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Summary.TotalNonCompliances != 6 {
		t.Errorf("total = %d", report.Summary.TotalNonCompliances)
	}
	first := report.Pareto[0]
	if first.Category != quality.LabelTDS || first.Count != 3 || first.Rank != 1 || first.Percentage != 50 {
		t.Errorf("top entry = %+v", first)
	}
	if last := report.Pareto[len(report.Pareto)-1]; last.CumulativePercentage != 100 {
		t.Errorf("last cumulative = %v", last.CumulativePercentage)
	}
}

func TestQCServiceHistogramAndScatter(t *testing.T) {
	ctx := context.Background()
	samples := &fakeSamples{}
	svc := NewQCService(samples, &fakeLocations{}, 0)

	if _, err := svc.Histogram(ctx, Window{}, "", 5); !errors.Is(err, ErrValidation) {
		t.Errorf("missing parameter error = %v", err)
	}
	if _, err := svc.Histogram(ctx, Window{}, "tds", 5); !errors.Is(err, qc.ErrInsufficientData) {
		t.Errorf("empty error = %v", err)
	}

	seedSamples(samples, "A",
		[4]float64{7.0, 300, 0.5, 0.4},
		[4]float64{7.5, 500, 0.5, 0.4},
		[4]float64{8.0, 700, 0.5, 0.4},
	)
	h, err := svc.Histogram(ctx, Window{}, "tds", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.Histogram) != DefaultBins || h.Statistics.Mean != 500 || h.SampleCount != 3 {
		t.Errorf("histogram = %+v", h)
	}

	s, err := svc.Scatter(ctx, Window{}, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ParamX != "ph" || s.ParamY != "tds" || s.Direction != "positive" || s.Strength != "very strong" {
		t.Errorf("scatter = %+v", s)
	}
	if _, err := svc.Scatter(ctx, Window{}, "ph", "colour"); !errors.Is(err, quality.ErrUnknownParameter) {
		t.Errorf("parameter error = %v", err)
	}
}

func TestQCServiceCheckSheetAndFlow(t *testing.T) {
	ctx := context.Background()
	samples := &fakeSamples{}
	svc := NewQCService(samples, &fakeLocations{}, 0)

	seedSamples(samples, "North", [4]float64{9.2, 650, 0.8, 0.15}, [4]float64{7.0, 300, 0.5, 0.4})
	seedSamples(samples, "South", [4]float64{7.1, 1200, 0.7, 0.4})

	sheet, err := svc.CheckSheet(ctx, Window{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sheet.Total != 4 || sheet.Summary[quality.LabelTDS] != 2 || len(sheet.Days) != 1 {
		t.Errorf("check sheet = %+v", sheet)
	}
	if sheet.Categories[0] != quality.LabelPH {
		t.Errorf("categories = %v", sheet.Categories)
	}

	flow, err := svc.ProcessFlow(ctx, Window{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flow.Steps) != 2 || flow.Steps[0].Name != "North" || flow.Steps[0].Duration != 2 || flow.Steps[0].Defects != 3 {
		t.Errorf("flow = %+v", flow.Steps)
	}
	if flow.TotalDefects != 4 {
		t.Errorf("total defects = %d", flow.TotalDefects)
	}
}

func TestQCServiceFishbone(t *testing.T) {
	ctx := context.Background()
	samples := &fakeSamples{}
	svc := NewQCService(samples, &fakeLocations{}, 0)
	seedSamples(samples, "A", [4]float64{7.0, 300, 6.5, 0.4})

	d, err := svc.Fishbone(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Effect != qc.DefaultEffect || len(d.Categories) != 6 {
		t.Fatalf("diagram = %+v", d)
	}
	found := false
	for _, c := range d.Categories {
		for _, cause := range c.Causes {
			if cause == "Coagulation process not working" {
				found = true
			}
		}
	}
	if !found {
		t.Error("turbidity specific cause missing")
	}
}

func TestQCServiceSeedNonCompliant(t *testing.T) {
	ctx := context.Background()
	samples, locations := &fakeSamples{}, &fakeLocations{}
	svc := NewQCService(samples, locations, 0)

	got, err := svc.SeedNonCompliant(ctx, 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 8 || len(samples.rows) != 8 || len(locations.hits) != 8 {
		t.Fatalf("seeded %d samples", len(got))
	}
	for _, s := range got {
		if s.IsCompliant || s.Location != "Jaipur" {
			t.Errorf("seeded sample = %+v", s)
		}
	}
}
