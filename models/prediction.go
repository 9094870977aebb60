package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"p9e.in/aquasure/pkg/forecast"
)

// ErrAlreadyResolved is returned when an outcome is recorded twice.
var ErrAlreadyResolved = errors.New("prediction already resolved")

// Prediction states.
const (
	PredictionActive     = "Active"
	PredictionResolved   = "Resolved"
	PredictionFalseAlarm = "False Alarm"
	PredictionInProgress = "In Progress"
)

// Data sources a prediction can be built from.
const (
	SourceLocation = "location"
	SourceGlobal   = "global"
)

// ActualParameters are the measured readings once the horizon has passed.
type ActualParameters struct {
	PH        *float64 `json:"ph,omitempty"`
	TDS       *float64 `json:"tds,omitempty"`
	Turbidity *float64 `json:"turbidity,omitempty"`
	Chlorine  *float64 `json:"chlorine,omitempty"`
}

// Outcome is what actually happened after a prediction.
type Outcome struct {
	ActualQualityIndex *float64         `json:"actualQualityIndex,omitempty"`
	ActualParameters   ActualParameters `json:"actualParameters"`
	PredictionAccuracy *float64         `json:"predictionAccuracy,omitempty"`
	ActionsTaken       []string         `json:"actionsTaken"`
	ActionsEffective   bool             `json:"actionsEffective"`
}

// Prediction is a stored forecast. It is inserted once and updated once
// with its outcome.
type Prediction struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Location              string    `gorm:"index:idx_prediction_location_date;not null"    json:"location"`
	DataSource            string    `gorm:"not null;default:location"                      json:"dataSource"`
	PredictionDate        time.Time `gorm:"index:idx_prediction_location_date;not null"    json:"predictionDate"`
	PredictedQualityIndex int       `json:"predictedQualityIndex"`

	PredictedParameters datatypes.JSONType[forecast.ParameterPredictions] `gorm:"type:jsonb" json:"predictedParameters"`
	RiskLevel           forecast.RiskLevel                                `gorm:"index:idx_prediction_risk_status;not null" json:"riskLevel"`
	RiskScore           int                                               `json:"riskScore"`
	RiskFactors         datatypes.JSONSlice[forecast.RiskFactor]          `gorm:"type:jsonb" json:"riskFactors"`
	RecommendedActions  datatypes.JSONSlice[forecast.Recommendation]      `gorm:"type:jsonb" json:"recommendedActions"`
	HistoricalPattern   datatypes.JSONType[forecast.HistoricalPattern]    `gorm:"type:jsonb" json:"historicalPattern"`
	ActualOutcome       datatypes.JSONType[*Outcome]                      `gorm:"type:jsonb" json:"actualOutcome"`

	Status          string         `gorm:"index:idx_prediction_risk_status;not null;default:Active" json:"status"`
	AlertSent       bool           `gorm:"default:false"                                            json:"alertSent"`
	AlertRecipients pq.StringArray `gorm:"type:text[]"                                              json:"alertRecipients"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// NewPrediction builds an active prediction from a forecast result.
func NewPrediction(location, source string, horizon time.Time, res *forecast.Result) *Prediction {
	return &Prediction{
		Location:              location,
		DataSource:            source,
		PredictionDate:        horizon,
		PredictedQualityIndex: res.QualityIndex.PredictedValue,
		PredictedParameters:   datatypes.NewJSONType(res.Parameters),
		RiskLevel:             res.Risk.Level,
		RiskScore:             res.Risk.Score,
		RiskFactors:           datatypes.JSONSlice[forecast.RiskFactor](res.Risk.Factors),
		RecommendedActions:    datatypes.JSONSlice[forecast.Recommendation](res.Recommendations),
		HistoricalPattern:     datatypes.NewJSONType(res.Pattern),
		Status:                PredictionActive,
		AlertRecipients:       pq.StringArray{},
	}
}

// Resolve records the outcome and closes the prediction.
func (p *Prediction) Resolve(o Outcome) error {
	if p.Status == PredictionResolved || p.ActualOutcome.Data() != nil {
		return ErrAlreadyResolved
	}
	if o.ActualQualityIndex != nil {
		acc := forecast.Accuracy(float64(p.PredictedQualityIndex), *o.ActualQualityIndex)
		o.PredictionAccuracy = &acc
	}
	if o.ActionsTaken == nil {
		o.ActionsTaken = []string{}
	}
	p.ActualOutcome = datatypes.NewJSONType(&o)
	p.Status = PredictionResolved
	return nil
}

// Accuracy returns the recorded accuracy, if any.
func (p *Prediction) Accuracy() (float64, bool) {
	o := p.ActualOutcome.Data()
	if o == nil || o.PredictionAccuracy == nil {
		return 0, false
	}
	return *o.PredictionAccuracy, true
}
