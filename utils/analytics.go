package utils

import (
	"sort"
	"time"
)

// AnalyticsEngine aggregates time series for the dashboard statistics.
type AnalyticsEngine struct{}

func NewAnalyticsEngine() *AnalyticsEngine {
	return &AnalyticsEngine{}
}

// KPIMetrics compares a current value against the previous window.
type KPIMetrics struct {
	CurrentValue   float64 `json:"currentValue"`
	PreviousValue  float64 `json:"previousValue"`
	Change         float64 `json:"change"`
	ChangePercent  float64 `json:"changePercent"`
	Trend          string  `json:"trend"`  // up, down, stable
	Status         string  `json:"status"` // good, warning, critical
	Target         float64 `json:"target,omitempty"`
	TargetProgress float64 `json:"targetProgress,omitempty"`
}

// TimeSeriesData is one aggregated point.
type TimeSeriesData struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Count     int       `json:"count"`
	Label     string    `json:"label,omitempty"`
}

// Observation is a single timestamped value to aggregate.
type Observation struct {
	At    time.Time
	Value float64
}

// CalculateKPI derives change, trend and target status.
func (ae *AnalyticsEngine) CalculateKPI(currentValue, previousValue, target float64) *KPIMetrics {
	kpi := &KPIMetrics{
		CurrentValue:  currentValue,
		PreviousValue: previousValue,
		Target:        target,
		Change:        currentValue - previousValue,
	}

	if previousValue != 0 {
		kpi.ChangePercent = (kpi.Change / previousValue) * 100
	}

	switch {
	case kpi.Change > 0:
		kpi.Trend = "up"
	case kpi.Change < 0:
		kpi.Trend = "down"
	default:
		kpi.Trend = "stable"
	}

	if target != 0 {
		kpi.TargetProgress = (currentValue / target) * 100
		switch {
		case kpi.TargetProgress >= 100:
			kpi.Status = "good"
		case kpi.TargetProgress >= 70:
			kpi.Status = "warning"
		default:
			kpi.Status = "critical"
		}
		return kpi
	}

	switch kpi.Trend {
	case "up":
		kpi.Status = "good"
	case "down":
		kpi.Status = "warning"
	default:
		kpi.Status = "stable"
	}
	return kpi
}

// GroupByDay averages observations per UTC calendar day, oldest first.
func (ae *AnalyticsEngine) GroupByDay(obs []Observation) []TimeSeriesData {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, o := range obs {
		key := o.At.UTC().Format("2006-01-02")
		sums[key] += o.Value
		counts[key]++
	}

	result := make([]TimeSeriesData, 0, len(sums))
	for key, sum := range sums {
		day, _ := time.Parse("2006-01-02", key)
		result = append(result, TimeSeriesData{
			Timestamp: day,
			Label:     key,
			Value:     sum / float64(counts[key]),
			Count:     counts[key],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result
}

// CalculateMovingAverage returns the trailing mean over window points. The
// series is returned unchanged when it is shorter than the window.
func (ae *AnalyticsEngine) CalculateMovingAverage(timeSeries []TimeSeriesData, window int) []TimeSeriesData {
	if window <= 0 || len(timeSeries) < window {
		return timeSeries
	}

	result := make([]TimeSeriesData, 0, len(timeSeries)-window+1)
	var sum float64
	for i, p := range timeSeries {
		sum += p.Value
		if i >= window {
			sum -= timeSeries[i-window].Value
		}
		if i < window-1 {
			continue
		}
		result = append(result, TimeSeriesData{
			Timestamp: p.Timestamp,
			Label:     p.Label,
			Value:     sum / float64(window),
			Count:     p.Count,
		})
	}
	return result
}
