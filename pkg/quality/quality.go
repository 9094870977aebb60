// Package quality holds the canonical quality-index scorer and the WHO/BIS
// compliance checks. Every path that stores or evaluates a reading goes
// through this package so the constants cannot drift apart.
package quality

import (
	"math"
)

// Status is the safety classification derived from a quality index.
type Status string

const (
	StatusSafe       Status = "Safe"
	StatusBorderline Status = "Borderline"
	StatusUnsafe     Status = "Unsafe"
)

// Severity describes how far a reading deviates from the compliance limits.
type Severity string

const (
	SeverityNone  Severity = "none"
	SeverityMinor Severity = "minor"
	SeverityMajor Severity = "major"
)

// Compliance limits (WHO / BIS drinking water).
const (
	PHMin        = 6.5
	PHMax        = 8.5
	TDSMax       = 500.0
	TurbidityMax = 5.0
	ChlorineMin  = 0.2
	ChlorineMax  = 1.0
)

// Reading is the set of four mandatory measurements of a sample.
type Reading struct {
	PH        float64 `json:"ph"`
	TDS       float64 `json:"tds"`
	Turbidity float64 `json:"turbidity"`
	Chlorine  float64 `json:"chlorine"`
}

// Result is the scored form of a reading.
type Result struct {
	Index  int    `json:"qualityIndex"`
	Status Status `json:"status"`
}

// Compliance lists the parameters violating the fixed limits.
type Compliance struct {
	IsCompliant        bool     `json:"isCompliant"`
	NonCompliantParams []string `json:"nonCompliantParams"`
	DeviationSeverity  Severity `json:"deviationSeverity"`
}

// Score converts raw readings into a 0-100 index. It never fails: out of
// range or negative inputs only move the penalty, and the result is clamped.
func Score(ph, tds, turbidity, chlorine float64) int {
	penalty := 0.0

	if ph < PHMin || ph > PHMax {
		penalty += math.Abs(ph-7) * 8
	} else {
		penalty += math.Abs(ph-7) * 3
	}

	if tds > 500 {
		penalty += (tds - 500) / 10
	}
	if tds > 1000 {
		penalty += 20
	}

	if turbidity > 1 {
		penalty += (turbidity - 1) * 5
	}
	if turbidity > 5 {
		penalty += 15
	}

	switch {
	case chlorine < 0.2:
		penalty += (0.2 - chlorine) * 50
	case chlorine > 1.0:
		penalty += (chlorine - 1.0) * 30
	case chlorine > 0.5:
		penalty += (chlorine - 0.5) * 10
	}

	score := 100 - penalty
	if math.IsNaN(score) {
		return 0
	}
	score = math.Max(0, math.Min(100, score))
	return int(roundHalfUp(score))
}

// roundHalfUp matches the rounding used by the dashboards (x.5 rounds up).
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Classify maps an index onto Safe (>=80), Unsafe (<50) or Borderline.
func Classify(index int) Status {
	switch {
	case index >= 80:
		return StatusSafe
	case index < 50:
		return StatusUnsafe
	default:
		return StatusBorderline
	}
}

// ComputeQualityIndex scores a reading and classifies it.
func ComputeQualityIndex(r Reading) Result {
	idx := Score(r.PH, r.TDS, r.Turbidity, r.Chlorine)
	return Result{Index: idx, Status: Classify(idx)}
}

func PHOutOfRange(ph float64) bool { return ph < PHMin || ph > PHMax }

func TDSHigh(tds float64) bool { return tds > TDSMax }

func TurbidityHigh(turbidity float64) bool { return turbidity > TurbidityMax }

func ChlorineOutOfRange(chlorine float64) bool {
	return chlorine < ChlorineMin || chlorine > ChlorineMax
}

// EvaluateCompliance reports the violated parameters in the fixed order
// pH, TDS, Turbidity, Chlorine.
func EvaluateCompliance(r Reading) Compliance {
	params := []string{}
	if PHOutOfRange(r.PH) {
		params = append(params, LabelPH)
	}
	if TDSHigh(r.TDS) {
		params = append(params, LabelTDS)
	}
	if TurbidityHigh(r.Turbidity) {
		params = append(params, LabelTurbidity)
	}
	if ChlorineOutOfRange(r.Chlorine) {
		params = append(params, LabelChlorine)
	}

	c := Compliance{
		IsCompliant:        len(params) == 0,
		NonCompliantParams: params,
		DeviationSeverity:  SeverityNone,
	}
	switch {
	case len(params) > 2:
		c.DeviationSeverity = SeverityMajor
	case len(params) > 0:
		c.DeviationSeverity = SeverityMinor
	}
	return c
}
