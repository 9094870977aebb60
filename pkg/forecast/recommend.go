package forecast

import "sort"

// Priority orders recommendations.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Recommendation categories.
const (
	CategoryPreventive = "Preventive"
	CategoryMonitoring = "Monitoring"
)

// Recommendation is a canned corrective or preventive action.
type Recommendation struct {
	Action             string   `json:"action"`
	Priority           Priority `json:"priority"`
	Category           string   `json:"category"`
	EstimatedCost      int      `json:"estimatedCost"`
	EstimatedImpact    int      `json:"estimatedImpact"`
	ImplementationTime string   `json:"implementationTime"`
	SuccessProbability float64  `json:"successProbability"`
	BasedOn            string   `json:"basedOn"`
}

var actionTemplates = map[RiskFactorKind]Recommendation{
	FactorPHOutOfRange: {
		Action: "Check and adjust pH treatment process", Category: CategoryPreventive,
		EstimatedCost: 5000, EstimatedImpact: 85, ImplementationTime: "2-4 hours",
		SuccessProbability: 0.85, BasedOn: "Standard water treatment protocol",
	},
	FactorHighTDS: {
		Action: "Review source water quality and filtration system", Category: CategoryPreventive,
		EstimatedCost: 10000, EstimatedImpact: 80, ImplementationTime: "1-2 days",
		SuccessProbability: 0.75, BasedOn: "TDS reduction best practices",
	},
	FactorHighTurbidity: {
		Action: "Increase filtration and coagulation treatment", Category: CategoryPreventive,
		EstimatedCost: 8000, EstimatedImpact: 90, ImplementationTime: "4-6 hours",
		SuccessProbability: 0.80, BasedOn: "Turbidity control standards",
	},
	FactorChlorineOutOfRange: {
		Action: "Adjust chlorination dosage", Category: CategoryPreventive,
		EstimatedCost: 2000, EstimatedImpact: 95, ImplementationTime: "1-2 hours",
		SuccessProbability: 0.90, BasedOn: "Chlorine residual management",
	},
	FactorDegradingTrend: {
		Action: "Conduct root cause analysis and implement preventive measures", Priority: PriorityHigh,
		Category: CategoryPreventive, EstimatedCost: 15000, EstimatedImpact: 75,
		ImplementationTime: "3-5 days", SuccessProbability: 0.70, BasedOn: "TQM continuous improvement principles",
	},
}

// standingActions are added whenever total factor impact reaches
// standingThreshold.
var standingActions = []Recommendation{
	{
		Action: "Increase sampling frequency for this location", Priority: PriorityHigh,
		Category: CategoryMonitoring, EstimatedCost: 3000, EstimatedImpact: 60,
		ImplementationTime: "Immediate", SuccessProbability: 0.95, BasedOn: "Risk-based sampling strategy",
	},
	{
		Action: "Notify stakeholders and prepare contingency plan", Priority: PriorityCritical,
		Category: CategoryPreventive, EstimatedCost: 0, EstimatedImpact: 50,
		ImplementationTime: "Immediate", SuccessProbability: 1.0, BasedOn: "Emergency response protocol",
	},
}

const standingThreshold = 50

// GenerateRecommendations maps factors to actions, highest priority first
// and, within a priority, highest estimated impact first.
func GenerateRecommendations(factors []RiskFactor) []Recommendation {
	recs := []Recommendation{}
	for _, f := range factors {
		tmpl, ok := actionTemplates[f.Kind]
		if !ok {
			continue
		}
		if tmpl.Priority == "" {
			tmpl.Priority = PriorityMedium
			if f.Impact > 20 {
				tmpl.Priority = PriorityHigh
			}
		}
		recs = append(recs, tmpl)
	}

	if totalImpact(factors) >= standingThreshold {
		recs = append(recs, standingActions...)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if ri, rj := recs[i].Priority.rank(), recs[j].Priority.rank(); ri != rj {
			return ri > rj
		}
		return recs[i].EstimatedImpact > recs[j].EstimatedImpact
	})
	return recs
}
