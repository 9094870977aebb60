package utils

import (
	"testing"
	"time"
)

func TestCalculateKPI(t *testing.T) {
	ae := NewAnalyticsEngine()
	tests := []struct {
		name              string
		current, previous float64
		target            float64
		trend, status     string
		changePercent     float64
	}{
		{"improving without target", 88, 80, 0, "up", "good", 10},
		{"declining without target", 72, 80, 0, "down", "warning", -10},
		{"flat", 80, 80, 0, "stable", "stable", 0},
		{"on target", 90, 85, 90, "up", "good", 100 * 5.0 / 85},
		{"near target", 70, 70, 90, "stable", "warning", 0},
		{"far below target", 50, 60, 90, "down", "critical", 100 * -10.0 / 60},
		{"no previous window", 75, 0, 0, "up", "good", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kpi := ae.CalculateKPI(tt.current, tt.previous, tt.target)
			if kpi.Trend != tt.trend || kpi.Status != tt.status {
				t.Errorf("trend/status = %s/%s, want %s/%s", kpi.Trend, kpi.Status, tt.trend, tt.status)
			}
			if d := kpi.ChangePercent - tt.changePercent; d > 1e-9 || d < -1e-9 {
				t.Errorf("changePercent = %v, want %v", kpi.ChangePercent, tt.changePercent)
			}
		})
	}
}

func TestGroupByDay(t *testing.T) {
	ae := NewAnalyticsEngine()
	day := func(d, h int) time.Time { return time.Date(2024, 9, d, h, 0, 0, 0, time.UTC) }

	got := ae.GroupByDay([]Observation{
		{day(9, 10), 70},
		{day(8, 9), 90},
		{day(8, 15), 80},
	})
	if len(got) != 2 {
		t.Fatalf("got %d days, want 2", len(got))
	}
	if got[0].Label != "2024-09-08" || got[0].Value != 85 || got[0].Count != 2 {
		t.Errorf("first day = %+v", got[0])
	}
	if got[1].Label != "2024-09-09" || got[1].Value != 70 {
		t.Errorf("second day = %+v", got[1])
	}
}

func TestCalculateMovingAverage(t *testing.T) {
	ae := NewAnalyticsEngine()
	series := []TimeSeriesData{{Value: 1}, {Value: 2}, {Value: 3}, {Value: 4}}

	got := ae.CalculateMovingAverage(series, 2)
	want := []float64{1.5, 2.5, 3.5}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Value != w {
			t.Errorf("point %d = %v, want %v", i, got[i].Value, w)
		}
	}

	if short := ae.CalculateMovingAverage(series, 10); len(short) != len(series) {
		t.Error("short series should be returned unchanged")
	}
}
