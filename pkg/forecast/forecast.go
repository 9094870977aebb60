package forecast

import "p9e.in/aquasure/pkg/quality"

// HistoricalPattern summarises what the history looked like.
type HistoricalPattern struct {
	SimilarIssues []SimilarIssue `json:"similarIssues"`
	PatternType   Trend          `json:"patternType"`
	Confidence    int            `json:"confidence"`
}

// Result is a complete forecast for one horizon.
type Result struct {
	QualityIndex    QualityPrediction    `json:"qualityIndex"`
	Parameters      ParameterPredictions `json:"predictedParameters"`
	Risk            Risk                 `json:"risk"`
	Recommendations []Recommendation     `json:"recommendedActions"`
	Pattern         HistoricalPattern    `json:"historicalPattern"`
}

// Forecast runs the whole engine over a time-ordered history.
func Forecast(history []Observation, daysAhead int) (*Result, error) {
	if len(history) < MinSamples {
		return nil, ErrInsufficientData
	}
	if daysAhead <= 0 {
		daysAhead = DefaultDaysAhead
	}

	indices := make([]float64, len(history))
	readings := make([]quality.Reading, len(history))
	for i, h := range history {
		indices[i] = float64(h.QualityIndex)
		readings[i] = h.Reading
	}

	qi, err := PredictQualityIndex(indices, daysAhead)
	if err != nil {
		return nil, err
	}
	params := PredictParameters(readings, daysAhead)
	risk := CalculateRiskScore(Outlook{
		PredictedQualityIndex: qi.PredictedValue,
		Parameters:            params,
		Trend:                 qi.Trend,
	}, history)

	return &Result{
		QualityIndex:    *qi,
		Parameters:      params,
		Risk:            risk,
		Recommendations: GenerateRecommendations(risk.Factors),
		Pattern: HistoricalPattern{
			SimilarIssues: SimilarIssues(history),
			PatternType:   qi.Trend,
			Confidence:    qi.Confidence,
		},
	}, nil
}
