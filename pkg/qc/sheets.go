package qc

// DayEntry is the raw defect tally for one day.
type DayEntry struct {
	Date    string         `json:"date"`
	Defects map[string]int `json:"defects"`
}

// DayRow is one row of a check sheet. Counts holds every category.
type DayRow struct {
	Date   string         `json:"date"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// CheckSheet tallies defects per category per day.
type CheckSheet struct {
	Categories []string       `json:"categories"`
	Days       []DayRow       `json:"dailyData"`
	Summary    map[string]int `json:"summary"`
	Total      int            `json:"total"`
}

// CreateCheckSheet builds a check sheet over categories. Categories missing
// from a day count as zero; defects outside categories are ignored.
func CreateCheckSheet(categories []string, days []DayEntry) *CheckSheet {
	sheet := &CheckSheet{
		Categories: categories,
		Days:       make([]DayRow, len(days)),
		Summary:    make(map[string]int, len(categories)),
	}
	for _, c := range categories {
		sheet.Summary[c] = 0
	}

	for i, d := range days {
		row := DayRow{Date: d.Date, Counts: make(map[string]int, len(categories))}
		for _, c := range categories {
			n := d.Defects[c]
			row.Counts[c] = n
			row.Total += n
			sheet.Summary[c] += n
		}
		sheet.Total += row.Total
		sheet.Days[i] = row
	}
	return sheet
}

// Step is one stage of a process flow.
type Step struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Duration     float64 `json:"duration"`
	Defects      int     `json:"defects"`
	QualityIndex float64 `json:"qualityIndex,omitempty"`
}

// StepAnalysis is a step with its derived figures.
type StepAnalysis struct {
	Step
	Sequence           int     `json:"sequence"`
	DurationPercentage float64 `json:"durationPercentage"`
	DefectRate         float64 `json:"defectRate"`
	IsBottleneck       bool    `json:"isBottleneck"`
}

// ProcessFlow summarises a sequence of steps.
type ProcessFlow struct {
	Steps             []StepAnalysis `json:"steps"`
	TotalDuration     float64        `json:"totalDuration"`
	TotalDefects      int            `json:"totalDefects"`
	AverageDefectRate float64        `json:"averageDefectRate"`
	Bottlenecks       []Step         `json:"bottlenecks"`
}

// bottleneckFactor is how far above the mean step duration a step must run
// to be flagged.
const bottleneckFactor = 1.5

// AnalyzeProcessFlow computes duration shares and flags bottleneck steps.
func AnalyzeProcessFlow(steps []Step) (*ProcessFlow, error) {
	if len(steps) == 0 {
		return nil, ErrInsufficientData
	}

	flow := &ProcessFlow{Steps: make([]StepAnalysis, len(steps)), Bottlenecks: []Step{}}
	for _, s := range steps {
		flow.TotalDuration += s.Duration
		flow.TotalDefects += s.Defects
	}
	threshold := flow.TotalDuration / float64(len(steps)) * bottleneckFactor
	flow.AverageDefectRate = float64(flow.TotalDefects) / float64(len(steps))

	for i, s := range steps {
		a := StepAnalysis{
			Step:         s,
			Sequence:     i + 1,
			DefectRate:   float64(s.Defects),
			IsBottleneck: s.Duration > threshold,
		}
		if flow.TotalDuration > 0 {
			a.DurationPercentage = s.Duration / flow.TotalDuration * 100
		}
		if a.IsBottleneck {
			flow.Bottlenecks = append(flow.Bottlenecks, s)
		}
		flow.Steps[i] = a
	}
	return flow, nil
}
