package spc

// Severity of a rule violation.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// Rule identifiers reported on violations.
const (
	RuleBeyondLimits = "Rule 1: Point beyond control limits"
	RuleSameSide     = "Rule 2: 9 consecutive points on one side"
	RuleTrend        = "Rule 3: 6 points in a row trending"
	RuleAlternating  = "Rule 4: 14 points alternating"
)

// Window widths of the run rules.
const (
	sameSideRun    = 9
	trendRun       = 6
	alternatingRun = 14
)

// Chart status values.
const (
	StatusInControl    = "In Control"
	StatusOutOfControl = "Out of Control"
	StatusNeedsReview  = "Needs Review"
)

// Violation is one rule firing at one index of the charted sequence.
type Violation struct {
	Index    int      `json:"index"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Value    float64  `json:"value"`
	Trend    string   `json:"trend,omitempty"`
}

// DetectOutOfControl runs the four Western Electric style rules over data.
// Rules are independent, so one index may be reported several times.
func DetectOutOfControl(data []float64, ucl, lcl, centerLine float64) []Violation {
	violations := []Violation{}
	if len(data) == 0 {
		return violations
	}

	for i, v := range data {
		if v > ucl || v < lcl {
			violations = append(violations, Violation{Index: i, Rule: RuleBeyondLimits, Severity: SeverityCritical, Value: v})
		}
	}

	for i := sameSideRun - 1; i < len(data); i++ {
		window := data[i-sameSideRun+1 : i+1]
		if allAbove(window, centerLine) || allBelow(window, centerLine) {
			violations = append(violations, Violation{Index: i, Rule: RuleSameSide, Severity: SeverityMajor, Value: data[i]})
		}
	}

	for i := trendRun - 1; i < len(data); i++ {
		window := data[i-trendRun+1 : i+1]
		up, down := monotonic(window)
		if !up && !down {
			continue
		}
		trend := "decreasing"
		if up {
			trend = "increasing"
		}
		violations = append(violations, Violation{Index: i, Rule: RuleTrend, Severity: SeverityMajor, Value: data[i], Trend: trend})
	}

	for i := alternatingRun - 1; i < len(data); i++ {
		if alternating(data[i-alternatingRun+1 : i+1]) {
			violations = append(violations, Violation{Index: i, Rule: RuleAlternating, Severity: SeverityMinor, Value: data[i]})
		}
	}

	return violations
}

func allAbove(window []float64, cl float64) bool {
	for _, v := range window {
		if v <= cl {
			return false
		}
	}
	return true
}

func allBelow(window []float64, cl float64) bool {
	for _, v := range window {
		if v >= cl {
			return false
		}
	}
	return true
}

// monotonic reports strict increase and strict decrease across the window.
func monotonic(window []float64) (up, down bool) {
	up, down = true, true
	for j := 1; j < len(window); j++ {
		if window[j] <= window[j-1] {
			up = false
		}
		if window[j] >= window[j-1] {
			down = false
		}
	}
	return up, down
}

// alternating expects "up" at odd offsets and "down" at even ones. A step
// that is not strictly up counts as down.
func alternating(window []float64) bool {
	for j := 1; j < len(window); j++ {
		up := window[j] > window[j-1]
		if up == (j%2 == 0) {
			return false
		}
	}
	return true
}

// ChartStatus summarises violations: any critical one puts the process out
// of control, anything else needs review.
func ChartStatus(violations []Violation) string {
	if len(violations) == 0 {
		return StatusInControl
	}
	for _, v := range violations {
		if v.Severity == SeverityCritical {
			return StatusOutOfControl
		}
	}
	return StatusNeedsReview
}
