package spc

import "p9e.in/aquasure/pkg/stats"

// SubgroupPoint describes one subgroup of an X-bar/R chart. Start is the
// offset of the subgroup's first value in the charted sequence.
type SubgroupPoint struct {
	Subgroup int       `json:"subgroup"`
	Start    int       `json:"start"`
	Values   []float64 `json:"values"`
	Average  float64   `json:"average"`
	Range    float64   `json:"range"`
}

// XBarRResult is the complete X-bar/R analysis of a value sequence.
type XBarRResult struct {
	XBar       *XBarChart      `json:"xBarChart"`
	R          *RChart         `json:"rChart"`
	Capability *Capability     `json:"processCapability"`
	Violations []Violation     `json:"violations"`
	Status     string          `json:"status"`
	Points     []SubgroupPoint `json:"points"`
	USL        *float64        `json:"usl,omitempty"`
	LSL        *float64        `json:"lsl,omitempty"`
}

// BuildXBarRChart subgroups values, computes both charts, capability over the
// raw values and violations over the subgroup means.
func BuildXBarRChart(values []float64, subgroupSize int, usl, lsl *float64) (*XBarRResult, error) {
	if len(values) == 0 {
		return nil, ErrInsufficientData
	}
	subgroups, err := CreateSubgroups(values, subgroupSize)
	if err != nil {
		return nil, err
	}

	xBar := CalculateXBarChart(subgroups)
	r := CalculateRChart(subgroups)
	violations := DetectOutOfControl(xBar.Data, xBar.UCL, xBar.LCL, xBar.CenterLine)

	points := make([]SubgroupPoint, len(subgroups))
	for i, g := range subgroups {
		points[i] = SubgroupPoint{
			Subgroup: i + 1,
			Start:    i * subgroupSize,
			Values:   g,
			Average:  xBar.Data[i],
			Range:    stats.Range(g),
		}
	}

	return &XBarRResult{
		XBar:       xBar,
		R:          r,
		Capability: CalculateProcessCapability(values, usl, lsl),
		Violations: violations,
		Status:     ChartStatus(violations),
		Points:     points,
		USL:        usl,
		LSL:        lsl,
	}, nil
}

// CChartResult is a c-chart together with its rule violations.
type CChartResult struct {
	Chart      *CChart     `json:"cChart"`
	Violations []Violation `json:"violations"`
	Status     string      `json:"status"`
}

// BuildCChart computes the c-chart of defect counts and evaluates the rules
// on the raw counts.
func BuildCChart(counts []float64) (*CChartResult, error) {
	chart := CalculateCChart(counts)
	if chart == nil {
		return nil, ErrInsufficientData
	}
	violations := DetectOutOfControl(counts, chart.UCL, chart.LCL, chart.CenterLine)
	return &CChartResult{Chart: chart, Violations: violations, Status: ChartStatus(violations)}, nil
}
