package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"p9e.in/aquasure/pkg/forecast"
	"p9e.in/aquasure/pkg/quality"
)

// ErrInvalidSample wraps every sample validation failure.
var ErrInvalidSample = errors.New("invalid sample")

// Corrective action states.
const (
	ActionPending    = "Pending"
	ActionInProgress = "In Progress"
	ActionCompleted  = "Completed"
)

// CorrectiveAction is one logged follow-up on a sample.
type CorrectiveAction struct {
	Action     string     `json:"action"`
	AssignedTo string     `json:"assignedTo"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Sample is one water-quality measurement at a location.
type Sample struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Location    string    `gorm:"column:location;index;not null"                  json:"location"`
	Timestamp   time.Time `gorm:"column:timestamp;index;not null"                 json:"timestamp"`
	PH          float64   `gorm:"column:ph;not null"                              json:"ph"`
	TDS         float64   `gorm:"column:tds;not null"                             json:"tds"`
	Turbidity   float64   `gorm:"column:turbidity;not null"                       json:"turbidity"`
	Chlorine    float64   `gorm:"column:chlorine;not null"                        json:"chlorine"`
	Temperature *float64  `gorm:"column:temperature"                              json:"temperature,omitempty"`

	QualityIndex       int              `gorm:"column:quality_index;not null"     json:"qualityIndex"`
	Status             quality.Status   `gorm:"column:status;index;not null"      json:"status"`
	IsCompliant        bool             `gorm:"column:is_compliant;not null"      json:"isCompliant"`
	NonCompliantParams pq.StringArray   `gorm:"type:text[]"                       json:"nonCompliantParams"`
	DeviationSeverity  quality.Severity `gorm:"column:deviation_severity"         json:"deviationSeverity"`

	Verified   bool       `gorm:"column:verified;default:false" json:"verified"`
	VerifiedBy *string    `gorm:"column:verified_by"            json:"verifiedBy"`
	VerifiedAt *time.Time `gorm:"column:verified_at"            json:"verifiedAt"`
	Notes      string     `gorm:"column:notes"                  json:"notes,omitempty"`

	CorrectiveActions datatypes.JSONSlice[CorrectiveAction] `gorm:"column:corrective_actions;type:jsonb" json:"correctiveActions"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"          json:"-"`
}

// Reading returns the four scored parameters.
func (s *Sample) Reading() quality.Reading {
	return quality.Reading{PH: s.PH, TDS: s.TDS, Turbidity: s.Turbidity, Chlorine: s.Chlorine}
}

// Apply recomputes the quality index, status and compliance from the
// readings. It is the only place those fields are written.
func (s *Sample) Apply() {
	r := s.Reading()
	res := quality.ComputeQualityIndex(r)
	c := quality.EvaluateCompliance(r)

	s.QualityIndex = res.Index
	s.Status = res.Status
	s.IsCompliant = c.IsCompliant
	s.NonCompliantParams = pq.StringArray(c.NonCompliantParams)
	s.DeviationSeverity = c.DeviationSeverity
}

// HasIssue reports whether the sample was unsafe or non-compliant.
func (s *Sample) HasIssue() bool {
	return s.Status == quality.StatusUnsafe || !s.IsCompliant
}

// Validate checks required fields and physical ranges.
func (s *Sample) Validate() error {
	var problems []string
	if strings.TrimSpace(s.Location) == "" {
		problems = append(problems, "location is required")
	}
	if s.PH < 0 || s.PH > 14 {
		problems = append(problems, "pH must be between 0 and 14")
	}
	if s.TDS < 0 {
		problems = append(problems, "TDS cannot be negative")
	}
	if s.Turbidity < 0 {
		problems = append(problems, "turbidity cannot be negative")
	}
	if s.Chlorine < 0 {
		problems = append(problems, "chlorine cannot be negative")
	}
	if t := s.Temperature; t != nil && (*t < -10 || *t > 50) {
		problems = append(problems, "temperature must be between -10 and 50")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSample, strings.Join(problems, "; "))
	}
	return nil
}

// Observation converts the sample for the forecast engine.
func (s *Sample) Observation() forecast.Observation {
	o := forecast.Observation{
		Time:               s.Timestamp,
		Location:           s.Location,
		Reading:            s.Reading(),
		QualityIndex:       s.QualityIndex,
		Status:             s.Status,
		IsCompliant:        s.IsCompliant,
		NonCompliantParams: s.NonCompliantParams,
	}
	if len(s.CorrectiveActions) > 0 {
		o.FirstAction = s.CorrectiveActions[0].Action
	}
	return o
}

// Observations converts a time-ordered slice of samples.
func Observations(samples []Sample) []forecast.Observation {
	out := make([]forecast.Observation, len(samples))
	for i := range samples {
		out[i] = samples[i].Observation()
	}
	return out
}
