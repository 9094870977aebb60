// Package stats provides the descriptive statistics used by the SPC, QC and
// forecast engines.
//
// Two variance conventions coexist on purpose: SampleStdDev (n-1) feeds
// process capability, PopulationStdDev (n) feeds forecast confidence. Callers
// pick the one their formula was defined with.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}

// SampleStdDev is the Bessel-corrected standard deviation. Slices with fewer
// than two values return 0.
func SampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return math.Sqrt(sumSquaredDiff(xs, Mean(xs)) / float64(len(xs)-1))
}

// PopulationVariance divides by n. Empty input returns 0.
func PopulationVariance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return sumSquaredDiff(xs, Mean(xs)) / float64(len(xs))
}

// PopulationStdDev is the square root of PopulationVariance.
func PopulationStdDev(xs []float64) float64 {
	return math.Sqrt(PopulationVariance(xs))
}

// Range returns max-min, or 0 for an empty slice.
func Range(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	lo, hi := MinMax(xs)
	return hi - lo
}

// MinMax returns the smallest and largest values. Both are 0 when xs is empty.
func MinMax(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi := xs[0], xs[0]
	for _, v := range xs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func sumSquaredDiff(xs []float64, mean float64) float64 {
	var sum float64
	for _, v := range xs {
		d := v - mean
		sum += d * d
	}
	return sum
}

// Summary is a descriptive snapshot of a series.
type Summary struct {
	Count    int     `json:"count"`
	Sum      float64 `json:"sum"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"stdDev"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	IQR      float64 `json:"iqr"`
}

// Summarize computes a Summary with population variance. Nil for empty input.
func Summarize(values []float64) *Summary {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := &Summary{Count: len(values)}
	for _, v := range values {
		s.Sum += v
	}
	s.Mean = s.Sum / float64(s.Count)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Range = s.Max - s.Min
	s.Median = Percentile(sorted, 50)
	s.Variance = PopulationVariance(values)
	s.StdDev = math.Sqrt(s.Variance)
	s.Q1 = Percentile(sorted, 25)
	s.Q3 = Percentile(sorted, 75)
	s.IQR = s.Q3 - s.Q1
	return s
}

// Percentile interpolates linearly between the closest ranks of an already
// sorted slice.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	index := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
