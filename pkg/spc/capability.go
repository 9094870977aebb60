package spc

import (
	"math"

	"p9e.in/aquasure/pkg/stats"
)

// Capability holds the process capability indices. Pp/Ppk reuse the same
// sigma as Cp/Cpk; there is no short/long-term split.
type Capability struct {
	Cp     *float64 `json:"cp"`
	Cpk    *float64 `json:"cpk"`
	Pp     *float64 `json:"pp"`
	Ppk    *float64 `json:"ppk"`
	Mean   float64  `json:"mean"`
	StdDev float64  `json:"stdDev"`
}

// CalculateProcessCapability returns nil when data is empty, when neither
// spec limit is given, or when the data has no spread. Constant input is
// detected on the values themselves since the computed sigma of a constant
// series may carry rounding noise.
func CalculateProcessCapability(data []float64, usl, lsl *float64) *Capability {
	if len(data) == 0 || (usl == nil && lsl == nil) {
		return nil
	}
	if lo, hi := stats.MinMax(data); lo == hi {
		return nil
	}
	mean := stats.Mean(data)
	sigma := stats.SampleStdDev(data)
	if sigma == 0 || math.IsNaN(sigma) {
		return nil
	}

	c := &Capability{Mean: mean, StdDev: sigma}
	if usl != nil && lsl != nil {
		cp := (*usl - *lsl) / (6 * sigma)
		pp := cp
		c.Cp, c.Pp = &cp, &pp
	}

	var k float64
	switch {
	case usl != nil && lsl != nil:
		k = math.Min((*usl-mean)/(3*sigma), (mean-*lsl)/(3*sigma))
	case usl != nil:
		k = (*usl - mean) / (3 * sigma)
	default:
		k = (mean - *lsl) / (3 * sigma)
	}
	cpk, ppk := k, k
	c.Cpk, c.Ppk = &cpk, &ppk
	return c
}

// Interpretation grades the process on its Cpk.
func (c *Capability) Interpretation() string {
	if c == nil || c.Cpk == nil {
		return ""
	}
	switch cpk := *c.Cpk; {
	case cpk >= 1.67:
		return "Excellent - Process is highly capable"
	case cpk >= 1.33:
		return "Good - Process is capable"
	case cpk >= 1.0:
		return "Marginal - Process is barely capable"
	default:
		return "Poor - Process is not capable"
	}
}
