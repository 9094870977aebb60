// Package spc implements the statistical process control calculator:
// Shewhart X-bar/R, p and c charts, process capability and out-of-control
// rule detection. Everything here is pure and synchronous.
package spc

import (
	"errors"
	"math"

	"p9e.in/aquasure/pkg/stats"
)

var (
	// ErrInsufficientData means there were no values to chart.
	ErrInsufficientData = errors.New("insufficient data for control chart")
	// ErrInvalidSubgroupSize is returned for subgroup sizes below 1.
	ErrInvalidSubgroupSize = errors.New("subgroup size must be at least 1")
)

// Control chart constants indexed by subgroup size n.
var (
	a2Table = map[int]float64{2: 1.880, 3: 1.023, 4: 0.729, 5: 0.577, 6: 0.483, 7: 0.419, 8: 0.373, 9: 0.337, 10: 0.308}
	d3Table = map[int]float64{2: 0, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0.076, 8: 0.136, 9: 0.184, 10: 0.223}
	d4Table = map[int]float64{2: 3.267, 3: 2.575, 4: 2.282, 5: 2.115, 6: 2.004, 7: 1.924, 8: 1.864, 9: 1.816, 10: 1.777}
)

// A2 falls back to the n=10 constant outside the table.
func A2(n int) float64 {
	if v, ok := a2Table[n]; ok {
		return v
	}
	return 0.308
}

// D3 is 0 for n<=6 and outside the table.
func D3(n int) float64 {
	return d3Table[n]
}

// D4 falls back to the n=10 constant outside the table.
func D4(n int) float64 {
	if v, ok := d4Table[n]; ok {
		return v
	}
	return 1.777
}

// Limits are the centre line and control limits of a chart.
type Limits struct {
	CenterLine float64 `json:"centerLine"`
	UCL        float64 `json:"ucl"`
	LCL        float64 `json:"lcl"`
}

// CreateSubgroups splits data into consecutive chunks of size; the last one
// may be shorter.
func CreateSubgroups(data []float64, size int) ([][]float64, error) {
	if size < 1 {
		return nil, ErrInvalidSubgroupSize
	}
	subgroups := make([][]float64, 0, (len(data)+size-1)/size)
	for i := 0; i < len(data); i += size {
		end := i + size
		if end > len(data) {
			end = len(data)
		}
		subgroups = append(subgroups, data[i:end])
	}
	return subgroups, nil
}

// XBarChart holds subgroup means and their limits.
type XBarChart struct {
	Limits
	Data    []float64 `json:"data"`
	XBarBar float64   `json:"xBarBar"`
	RBar    float64   `json:"rBar"`
}

// RChart holds subgroup ranges and their limits.
type RChart struct {
	Limits
	Data []float64 `json:"data"`
}

// CalculateXBarChart computes the X-bar chart. The subgroup size is taken
// from the first subgroup. Nil when there are no subgroups.
func CalculateXBarChart(subgroups [][]float64) *XBarChart {
	if len(subgroups) == 0 {
		return nil
	}
	averages := make([]float64, len(subgroups))
	ranges := make([]float64, len(subgroups))
	for i, g := range subgroups {
		averages[i] = stats.Mean(g)
		ranges[i] = stats.Range(g)
	}

	xBarBar := stats.Mean(averages)
	rBar := stats.Mean(ranges)
	a2 := A2(len(subgroups[0]))

	return &XBarChart{
		Limits: Limits{
			CenterLine: xBarBar,
			UCL:        xBarBar + a2*rBar,
			LCL:        math.Max(0, xBarBar-a2*rBar),
		},
		Data:    averages,
		XBarBar: xBarBar,
		RBar:    rBar,
	}
}

// CalculateRChart computes the range chart. Nil when there are no subgroups.
func CalculateRChart(subgroups [][]float64) *RChart {
	if len(subgroups) == 0 {
		return nil
	}
	ranges := make([]float64, len(subgroups))
	for i, g := range subgroups {
		ranges[i] = stats.Range(g)
	}
	rBar := stats.Mean(ranges)
	n := len(subgroups[0])

	return &RChart{
		Limits: Limits{
			CenterLine: rBar,
			UCL:        D4(n) * rBar,
			LCL:        D3(n) * rBar,
		},
		Data: ranges,
	}
}

// DailyCount is one inspection period of a p-chart.
type DailyCount struct {
	Date      string `json:"date"`
	Inspected int    `json:"inspected"`
	Defective int    `json:"defective"`
}

// PPoint is one p-chart point with its own limits.
type PPoint struct {
	Limits
	Index int     `json:"index"`
	Date  string  `json:"date,omitempty"`
	Value float64 `json:"value"`
}

// CalculatePChart computes per-period limits around the pooled fraction
// defective. Nil when nothing was inspected.
func CalculatePChart(days []DailyCount) []PPoint {
	if len(days) == 0 {
		return nil
	}
	var inspected, defective int
	for _, d := range days {
		inspected += d.Inspected
		defective += d.Defective
	}
	if inspected == 0 {
		return nil
	}
	pBar := float64(defective) / float64(inspected)

	points := make([]PPoint, len(days))
	for i, d := range days {
		divisor := d.Inspected
		if divisor == 0 {
			divisor = 1
		}
		n := d.Inspected
		if n == 0 {
			n = 100
		}
		stdErr := math.Sqrt(pBar * (1 - pBar) / float64(n))
		points[i] = PPoint{
			Limits: Limits{
				CenterLine: pBar,
				UCL:        pBar + 3*stdErr,
				LCL:        math.Max(0, pBar-3*stdErr),
			},
			Index: i + 1,
			Date:  d.Date,
			Value: float64(d.Defective) / float64(divisor),
		}
	}
	return points
}

// CChart is a defect-count chart under the Poisson assumption.
type CChart struct {
	Limits
	Data []float64 `json:"data"`
}

// CalculateCChart computes the c-chart. Nil for empty input.
func CalculateCChart(counts []float64) *CChart {
	if len(counts) == 0 {
		return nil
	}
	cBar := stats.Mean(counts)
	sigma := math.Sqrt(cBar)
	return &CChart{
		Limits: Limits{
			CenterLine: cBar,
			UCL:        cBar + 3*sigma,
			LCL:        math.Max(0, cBar-3*sigma),
		},
		Data: counts,
	}
}
