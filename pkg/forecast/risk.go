package forecast

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"p9e.in/aquasure/pkg/quality"
)

// Observation is one historical sample as the engine sees it.
type Observation struct {
	Time               time.Time       `json:"date"`
	Location           string          `json:"location"`
	Reading            quality.Reading `json:"reading"`
	QualityIndex       int             `json:"qualityIndex"`
	Status             quality.Status  `json:"status"`
	IsCompliant        bool            `json:"isCompliant"`
	NonCompliantParams []string        `json:"nonCompliantParams"`
	// FirstAction is the first corrective action recorded, if any.
	FirstAction string `json:"firstAction,omitempty"`
}

// HasIssue reports whether the sample was unsafe or non-compliant.
func (o Observation) HasIssue() bool {
	return o.Status == quality.StatusUnsafe || !o.IsCompliant
}

// RiskFactorKind identifies a risk factor independently of its label.
type RiskFactorKind string

const (
	FactorLowQualityIndex      RiskFactorKind = "low_quality_index"
	FactorModerateQualityIndex RiskFactorKind = "moderate_quality_index"
	FactorDegradingTrend       RiskFactorKind = "degrading_trend"
	FactorPHOutOfRange         RiskFactorKind = "ph_out_of_range"
	FactorHighTDS              RiskFactorKind = "high_tds"
	FactorHighTurbidity        RiskFactorKind = "high_turbidity"
	FactorChlorineOutOfRange   RiskFactorKind = "chlorine_out_of_range"
	FactorQualityIssueHistory  RiskFactorKind = "quality_issue_history"
)

// Impact is the fixed score contribution of a factor kind.
func (k RiskFactorKind) Impact() int {
	switch k {
	case FactorLowQualityIndex:
		return 40
	case FactorModerateQualityIndex:
		return 20
	case FactorDegradingTrend:
		return 25
	case FactorPHOutOfRange, FactorHighTDS, FactorHighTurbidity, FactorChlorineOutOfRange:
		return 15
	case FactorQualityIssueHistory:
		return 10
	}
	return 0
}

// Label is the human readable factor name.
func (k RiskFactorKind) Label() string {
	switch k {
	case FactorLowQualityIndex:
		return "Low Predicted Quality Index"
	case FactorModerateQualityIndex:
		return "Moderate Predicted Quality Index"
	case FactorDegradingTrend:
		return "Degrading Quality Trend"
	case FactorPHOutOfRange:
		return "pH Out of Range"
	case FactorHighTDS:
		return "High TDS"
	case FactorHighTurbidity:
		return "High Turbidity"
	case FactorChlorineOutOfRange:
		return "Chlorine Out of Range"
	case FactorQualityIssueHistory:
		return "History of Quality Issues"
	}
	return string(k)
}

// RiskFactor is one triggered contribution to a risk score.
type RiskFactor struct {
	Kind        RiskFactorKind `json:"kind"`
	Factor      string         `json:"factor"`
	Impact      int            `json:"impact"`
	Description string         `json:"description"`
}

func newFactor(kind RiskFactorKind, format string, args ...any) RiskFactor {
	return RiskFactor{Kind: kind, Factor: kind.Label(), Impact: kind.Impact(), Description: fmt.Sprintf(format, args...)}
}

// RiskLevel buckets a risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// LevelFor maps a score to its level.
func LevelFor(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskCritical
	case score >= 50:
		return RiskHigh
	case score >= 30:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Alerting reports whether the level warrants an alert.
func (l RiskLevel) Alerting() bool {
	return l == RiskHigh || l == RiskCritical
}

// Outlook is the predicted state a risk assessment is made against.
type Outlook struct {
	PredictedQualityIndex int                  `json:"predictedQualityIndex"`
	Parameters            ParameterPredictions `json:"predictedParameters"`
	Trend                 Trend                `json:"trend"`
}

// Risk is an assessed risk with its contributing factors.
type Risk struct {
	Score   int          `json:"riskScore"`
	Level   RiskLevel    `json:"riskLevel"`
	Factors []RiskFactor `json:"riskFactors"`
}

// issueHistoryThreshold is the number of past issues above which history
// counts as a risk factor.
const issueHistoryThreshold = 3

// CalculateRiskScore sums independent factor impacts, capped at 100.
func CalculateRiskScore(o Outlook, history []Observation) Risk {
	factors := []RiskFactor{}

	switch qi := o.PredictedQualityIndex; {
	case qi < 50:
		factors = append(factors, newFactor(FactorLowQualityIndex, "Predicted QI: %d (Unsafe range)", qi))
	case qi < 80:
		factors = append(factors, newFactor(FactorModerateQualityIndex, "Predicted QI: %d (Borderline range)", qi))
	}

	if o.Trend == TrendDegrading {
		factors = append(factors, newFactor(FactorDegradingTrend, "Quality is trending downward"))
	}

	p := o.Parameters
	if v := p.PH.Value; v != nil && quality.PHOutOfRange(*v) {
		factors = append(factors, newFactor(FactorPHOutOfRange, "Predicted pH: %s (Standard: 6.5-8.5)", num(*v)))
	}
	if v := p.TDS.Value; v != nil && quality.TDSHigh(*v) {
		factors = append(factors, newFactor(FactorHighTDS, "Predicted TDS: %s mg/L (Limit: 500)", num(*v)))
	}
	if v := p.Turbidity.Value; v != nil && quality.TurbidityHigh(*v) {
		factors = append(factors, newFactor(FactorHighTurbidity, "Predicted Turbidity: %s NTU (Limit: 5)", num(*v)))
	}
	if v := p.Chlorine.Value; v != nil && quality.ChlorineOutOfRange(*v) {
		factors = append(factors, newFactor(FactorChlorineOutOfRange, "Predicted Chlorine: %s mg/L (Range: 0.2-1.0)", num(*v)))
	}

	issues := 0
	for _, h := range history {
		if h.HasIssue() {
			issues++
		}
	}
	if issues > issueHistoryThreshold {
		factors = append(factors, newFactor(FactorQualityIssueHistory, "%d recent quality issues at this location", issues))
	}

	score := totalImpact(factors)
	level := LevelFor(score)
	if score > 100 {
		score = 100
	}
	return Risk{Score: score, Level: level, Factors: factors}
}

func totalImpact(factors []RiskFactor) int {
	total := 0
	for _, f := range factors {
		total += f.Impact
	}
	return total
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SimilarIssue is a past unsafe or non-compliant sample.
type SimilarIssue struct {
	Date       time.Time `json:"date"`
	Location   string    `json:"location"`
	Issue      string    `json:"issue"`
	Resolution string    `json:"resolution"`
	Success    bool      `json:"success"`
}

// similarIssueLimit caps the number of past issues reported.
const similarIssueLimit = 5

// SimilarIssues returns the most recent issues in history, oldest first.
func SimilarIssues(history []Observation) []SimilarIssue {
	var issues []SimilarIssue
	for _, h := range history {
		if !h.HasIssue() {
			continue
		}
		issue := strings.Join(h.NonCompliantParams, ", ")
		if issue == "" {
			issue = "Quality issue"
		}
		resolution := h.FirstAction
		if resolution == "" {
			resolution = "Not resolved"
		}
		issues = append(issues, SimilarIssue{
			Date:       h.Time,
			Location:   h.Location,
			Issue:      issue,
			Resolution: resolution,
			Success:    h.Status == quality.StatusSafe,
		})
	}
	if len(issues) > similarIssueLimit {
		issues = issues[len(issues)-similarIssueLimit:]
	}
	if issues == nil {
		issues = []SimilarIssue{}
	}
	return issues
}
