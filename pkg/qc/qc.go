// Package qc implements the seven basic quality tools that are not control
// charts: Pareto analysis, histograms, scatter correlation, check sheets,
// process flow analysis and cause-and-effect diagrams.
package qc

import (
	"errors"
	"math"
	"sort"

	"p9e.in/aquasure/pkg/stats"
)

var (
	// ErrInsufficientData means there was nothing to analyse.
	ErrInsufficientData = errors.New("insufficient data for analysis")
	// ErrInvalidBins is returned for histogram bin counts outside 1..MaxBins.
	ErrInvalidBins = errors.New("histogram bins must be between 1 and 1000")
	// ErrLengthMismatch is returned when paired series differ in length.
	ErrLengthMismatch = errors.New("paired series must have equal length")
)

// ======================================================================
// PARETO
// ======================================================================

// CategoryCount is one category of a Pareto analysis.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ParetoEntry is one ranked row of a Pareto chart.
type ParetoEntry struct {
	Category             string  `json:"category"`
	Count                int     `json:"count"`
	Percentage           float64 `json:"percentage"`
	Cumulative           int     `json:"cumulative"`
	CumulativePercentage float64 `json:"cumulativePercentage"`
	Rank                 int     `json:"rank"`
}

// Pareto ranks categories by count, descending. Equal counts keep their
// input order.
func Pareto(counts []CategoryCount) ([]ParetoEntry, error) {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if len(counts) == 0 || total == 0 {
		return nil, ErrInsufficientData
	}

	sorted := make([]CategoryCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })

	entries := make([]ParetoEntry, len(sorted))
	cumulative := 0
	for i, c := range sorted {
		cumulative += c.Count
		entries[i] = ParetoEntry{
			Category:             c.Category,
			Count:                c.Count,
			Percentage:           float64(c.Count) / float64(total) * 100,
			Cumulative:           cumulative,
			CumulativePercentage: float64(cumulative) / float64(total) * 100,
			Rank:                 i + 1,
		}
	}
	return entries, nil
}

// ======================================================================
// HISTOGRAM
// ======================================================================

// Bin is one equal-width histogram bucket. Frequency is a percentage of all
// values.
type Bin struct {
	Bin       int     `json:"bin"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

// MaxBins caps the histogram bin count.
const MaxBins = 1000

// Histogram buckets values into bins equal-width bins over [min, max]. The
// maximum lands in the last bin.
func Histogram(values []float64, bins int) ([]Bin, error) {
	if len(values) == 0 {
		return nil, ErrInsufficientData
	}
	if bins < 1 || bins > MaxBins {
		return nil, ErrInvalidBins
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	width := 1.0
	if hi > lo {
		width = (hi - lo) / float64(bins)
	}

	hist := make([]Bin, bins)
	for i := range hist {
		hist[i] = Bin{
			Bin:   i,
			Start: lo + float64(i)*width,
			End:   lo + float64(i+1)*width,
		}
	}
	for _, v := range values {
		idx := int(math.Floor((v - lo) / width))
		if idx > bins-1 {
			idx = bins - 1
		}
		hist[idx].Count++
	}
	for i := range hist {
		hist[i].Frequency = float64(hist[i].Count) / float64(len(values)) * 100
	}
	return hist, nil
}

// ======================================================================
// SCATTER / CORRELATION
// ======================================================================

// Point is one paired observation of a scatter diagram.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CorrelationResult describes the Pearson correlation of two series.
// Computable is false when either series has zero variance; R is then 0.
type CorrelationResult struct {
	R          float64 `json:"correlation"`
	Strength   string  `json:"strength"`
	Direction  string  `json:"direction"`
	Computable bool    `json:"computable"`
	Points     []Point `json:"dataPoints"`
}

// Correlation computes Pearson's r between xs and ys.
func Correlation(xs, ys []float64) (*CorrelationResult, error) {
	if len(xs) != len(ys) {
		return nil, ErrLengthMismatch
	}
	if len(xs) == 0 {
		return nil, ErrInsufficientData
	}

	n := float64(len(xs))
	var xMean, yMean float64
	for i := range xs {
		xMean += xs[i]
		yMean += ys[i]
	}
	xMean /= n
	yMean /= n

	var num, xVar, yVar float64
	points := make([]Point, len(xs))
	for i := range xs {
		dx, dy := xs[i]-xMean, ys[i]-yMean
		num += dx * dy
		xVar += dx * dx
		yVar += dy * dy
		points[i] = Point{X: xs[i], Y: ys[i]}
	}

	res := &CorrelationResult{Points: points}
	if den := math.Sqrt(xVar * yVar); den != 0 && !constant(xs) && !constant(ys) {
		res.R = num / den
		res.Computable = true
	}
	res.Strength = Strength(res.R)
	// r == 0 reports as negative
	res.Direction = "negative"
	if res.R > 0 {
		res.Direction = "positive"
	}
	return res, nil
}

func constant(xs []float64) bool {
	lo, hi := stats.MinMax(xs)
	return lo == hi
}

// Strength buckets the magnitude of a correlation coefficient.
func Strength(r float64) string {
	switch a := math.Abs(r); {
	case a >= 0.9:
		return "very strong"
	case a >= 0.7:
		return "strong"
	case a >= 0.5:
		return "moderate"
	case a >= 0.3:
		return "weak"
	default:
		return "none"
	}
}
