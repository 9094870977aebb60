// Package forecast holds the trend, prediction and risk engine for water
// quality. It consumes ordered sample histories and produces forecasts,
// risk assessments and recommended actions without touching storage.
//
// Confidence values produced here are heuristics derived from recent
// spread. They are not calibrated statistical confidence intervals and
// should not be read as probabilities.
package forecast

import (
	"errors"
	"math"

	"p9e.in/aquasure/pkg/quality"
	"p9e.in/aquasure/pkg/stats"
)

// ErrInsufficientData is returned when a history is shorter than the
// minimum a computation needs.
var ErrInsufficientData = errors.New("insufficient historical data")

const (
	// DefaultTrendWindow is the number of trailing samples regressed.
	DefaultTrendWindow = 30
	// MinSamples is the shortest history a prediction accepts.
	MinSamples = 7
	// DefaultDaysAhead is the default prediction horizon.
	DefaultDaysAhead = 7
)

// Trend labels the direction of the quality index.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDegrading Trend = "degrading"
	TrendStable    Trend = "stable"
)

// TrendLine is an ordinary least-squares fit of value against position.
type TrendLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Trend     Trend   `json:"trend"`
}

// CalculateTrend regresses the last window values against their index.
// A window of zero or less uses DefaultTrendWindow.
func CalculateTrend(values []float64, window int) (*TrendLine, error) {
	if len(values) < 2 {
		return nil, ErrInsufficientData
	}
	if window <= 0 {
		window = DefaultTrendWindow
	}
	if len(values) > window {
		values = values[len(values)-window:]
	}

	n := float64(len(values))
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	slope := (n*sumXY - sumX*sumY) / (n*sumX2 - sumX*sumX)
	intercept := (sumY - slope*sumX) / n

	trend := TrendStable
	switch {
	case slope > 0:
		trend = TrendImproving
	case slope < 0:
		trend = TrendDegrading
	}
	return &TrendLine{Slope: slope, Intercept: intercept, Trend: trend}, nil
}

// QualityPrediction is a projected quality index.
type QualityPrediction struct {
	PredictedValue int     `json:"predictedValue"`
	Confidence     int     `json:"confidence"`
	Trend          Trend   `json:"trend"`
	Slope          float64 `json:"slope"`
}

// PredictQualityIndex extrapolates the last quality index along the trend
// slope. Confidence falls by 2 points per unit of population standard
// deviation over the last MinSamples values.
func PredictQualityIndex(values []float64, daysAhead int) (*QualityPrediction, error) {
	if len(values) < MinSamples {
		return nil, ErrInsufficientData
	}
	line, err := CalculateTrend(values, DefaultTrendWindow)
	if err != nil {
		return nil, err
	}

	predicted := clamp(values[len(values)-1]+line.Slope*float64(daysAhead), 0, 100)
	recent := values[len(values)-MinSamples:]
	confidence := clamp(100-2*stats.PopulationStdDev(recent), 0, 100)

	return &QualityPrediction{
		PredictedValue: int(roundHalfUp(predicted)),
		Confidence:     int(roundHalfUp(confidence)),
		Trend:          line.Trend,
		Slope:          line.Slope,
	}, nil
}

// ParameterPrediction is a projected reading. Value is nil when the history
// had too few values for the parameter.
type ParameterPrediction struct {
	Value      *float64 `json:"value"`
	Confidence int      `json:"confidence"`
}

// ParameterPredictions holds one prediction per measured parameter.
type ParameterPredictions struct {
	PH        ParameterPrediction `json:"ph"`
	TDS       ParameterPrediction `json:"tds"`
	Turbidity ParameterPrediction `json:"turbidity"`
	Chlorine  ParameterPrediction `json:"chlorine"`
}

// PredictParameters projects each reading from its last MinSamples values:
// their mean plus the endpoint slope times daysAhead. NaN readings are
// treated as missing.
func PredictParameters(readings []quality.Reading, daysAhead int) ParameterPredictions {
	series := func(pick func(quality.Reading) float64) []float64 {
		out := make([]float64, 0, len(readings))
		for _, r := range readings {
			if v := pick(r); !math.IsNaN(v) {
				out = append(out, v)
			}
		}
		return out
	}
	return ParameterPredictions{
		PH:        predictSeries(series(func(r quality.Reading) float64 { return r.PH }), daysAhead),
		TDS:       predictSeries(series(func(r quality.Reading) float64 { return r.TDS }), daysAhead),
		Turbidity: predictSeries(series(func(r quality.Reading) float64 { return r.Turbidity }), daysAhead),
		Chlorine:  predictSeries(series(func(r quality.Reading) float64 { return r.Chlorine }), daysAhead),
	}
}

func predictSeries(values []float64, daysAhead int) ParameterPrediction {
	if len(values) < MinSamples {
		return ParameterPrediction{}
	}
	recent := values[len(values)-MinSamples:]
	avg := stats.Mean(recent)
	slope := (recent[len(recent)-1] - recent[0]) / float64(len(recent))
	value := roundHalfUp((avg+slope*float64(daysAhead))*100) / 100
	confidence := clamp(100-5*stats.PopulationStdDev(recent), 0, 100)
	return ParameterPrediction{Value: &value, Confidence: int(roundHalfUp(confidence))}
}

// Accuracy scores a resolved prediction; 100 is exact.
func Accuracy(predicted, actual float64) float64 {
	return 100 - math.Abs(predicted-actual)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
