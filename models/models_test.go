package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"p9e.in/aquasure/pkg/quality"
)

func TestSampleApply(t *testing.T) {
	tests := []struct {
		name      string
		sample    Sample
		status    quality.Status
		compliant bool
		params    []string
		severity  quality.Severity
	}{
		{"ideal", Sample{PH: 7.0, TDS: 300, Turbidity: 0.5, Chlorine: 0.3}, quality.StatusSafe, true, nil, quality.SeverityNone},
		{"bad", Sample{PH: 5.0, TDS: 1200, Turbidity: 8, Chlorine: 0.1}, quality.StatusUnsafe, false,
			[]string{"pH", "TDS", "Turbidity", "Chlorine"}, quality.SeverityMajor},
		{"tds only", Sample{PH: 7.1, TDS: 650, Turbidity: 0.7, Chlorine: 0.4}, quality.StatusSafe, false,
			[]string{"TDS"}, quality.SeverityMinor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.sample
			s.Apply()
			if s.Status != tt.status || s.IsCompliant != tt.compliant || s.DeviationSeverity != tt.severity {
				t.Errorf("got status %s compliant %v severity %s", s.Status, s.IsCompliant, s.DeviationSeverity)
			}
			if len(s.NonCompliantParams) != len(tt.params) {
				t.Fatalf("params = %v, want %v", s.NonCompliantParams, tt.params)
			}
			for i := range tt.params {
				if s.NonCompliantParams[i] != tt.params[i] {
					t.Errorf("params = %v, want %v", s.NonCompliantParams, tt.params)
				}
			}
			if s.QualityIndex != quality.Score(s.PH, s.TDS, s.Turbidity, s.Chlorine) {
				t.Errorf("index %d differs from the shared scorer", s.QualityIndex)
			}
		})
	}
}

func TestSampleValidate(t *testing.T) {
	hot := 60.0
	tests := []struct {
		name    string
		sample  Sample
		wantErr bool
	}{
		{"valid", Sample{Location: "Jaipur", PH: 7, TDS: 300, Turbidity: 1, Chlorine: 0.3}, false},
		{"no location", Sample{PH: 7}, true},
		{"ph above 14", Sample{Location: "A", PH: 15}, true},
		{"negative tds", Sample{Location: "A", PH: 7, TDS: -1}, true},
		{"too hot", Sample{Location: "A", PH: 7, Temperature: &hot}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sample.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSample) {
				t.Errorf("error %v does not wrap ErrInvalidSample", err)
			}
		})
	}
}

func TestSampleObservation(t *testing.T) {
	s := Sample{Location: "Kota", PH: 9.2, TDS: 650, Turbidity: 0.8, Chlorine: 0.15}
	s.Apply()
	s.CorrectiveActions = append(s.CorrectiveActions, CorrectiveAction{Action: "Dose adjusted"})

	o := s.Observation()
	if !o.HasIssue() || o.FirstAction != "Dose adjusted" || o.Location != "Kota" || o.Reading.PH != 9.2 {
		t.Errorf("observation = %+v", o)
	}
}

func TestPredictionResolve(t *testing.T) {
	p := &Prediction{PredictedQualityIndex: 80, Status: PredictionActive}
	actual := 75.0
	if err := p.Resolve(Outcome{ActualQualityIndex: &actual}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc, ok := p.Accuracy(); !ok || acc != 95 {
		t.Errorf("accuracy = %v %v", acc, ok)
	}
	if p.Status != PredictionResolved || p.ActualOutcome.Data().ActionsTaken == nil {
		t.Errorf("prediction = %+v", p)
	}
	if err := p.Resolve(Outcome{}); !errors.Is(err, ErrAlreadyResolved) {
		t.Errorf("second resolve error = %v", err)
	}
}

func TestPredictionResolveWithoutActual(t *testing.T) {
	p := &Prediction{PredictedQualityIndex: 60, Status: PredictionActive}
	if err := p.Resolve(Outcome{ActionsEffective: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.Accuracy(); ok {
		t.Error("accuracy should be absent without an actual index")
	}
}

func TestJSONTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2025-05-16T15:32:25Z"`, time.Date(2025, 5, 16, 15, 32, 25, 0, time.UTC)},
		{`"2025-05-16T15:32:25.181226"`, time.Date(2025, 5, 16, 15, 32, 25, 181226000, time.UTC)},
		{`"2025-05-16 15:32:25"`, time.Date(2025, 5, 16, 15, 32, 25, 0, time.UTC)},
		{`"2025-05-16"`, time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC)},
		{`1747409545`, time.Unix(1747409545, 0).UTC()},
		{`1747409545000`, time.UnixMilli(1747409545000).UTC()},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var jt JSONTime
			if err := json.Unmarshal([]byte(tt.in), &jt); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !jt.Time().Equal(tt.want) {
				t.Errorf("got %v, want %v", jt.Time(), tt.want)
			}
		})
	}

	var jt JSONTime
	if err := json.Unmarshal([]byte(`"yesterday"`), &jt); err == nil {
		t.Error("expected error for free text")
	}
	if err := json.Unmarshal([]byte(`null`), &jt); err != nil || !jt.IsZero() {
		t.Errorf("null = %v %v", jt, err)
	}
}

func TestNewChartCode(t *testing.T) {
	a, err := NewChartCode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := NewChartCode()
	if len(a) != len("CHART-")+12 || a[:6] != "CHART-" || a == b {
		t.Errorf("codes %q %q", a, b)
	}
}
