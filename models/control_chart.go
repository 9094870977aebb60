package models

import (
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"p9e.in/aquasure/pkg/spc"
)

// Chart types.
const (
	ChartXBarR = "X-bar R"
	ChartP     = "p-Chart"
	ChartC     = "c-Chart"
)

// ChartPeriod is the time span a chart was computed over.
type ChartPeriod struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// ChartLimits are the control and optional specification limits.
type ChartLimits struct {
	spc.Limits
	USL *float64 `json:"usl,omitempty"`
	LSL *float64 `json:"lsl,omitempty"`
}

// ChartPoint is one plotted point of a stored chart.
type ChartPoint struct {
	Subgroup int        `json:"subgroup"`
	Values   []float64  `json:"values,omitempty"`
	Average  float64    `json:"average"`
	Range    float64    `json:"range"`
	Date     *time.Time `json:"date,omitempty"`
}

// ControlChart is the stored result of the latest chart computation for a
// (type, parameter, location) key.
type ControlChart struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code       string    `gorm:"uniqueIndex;not null"                            json:"chartId"`
	Type       string    `gorm:"uniqueIndex:idx_chart_key;not null"              json:"type"`
	Parameter  string    `gorm:"uniqueIndex:idx_chart_key;not null"              json:"parameter"`
	Location   string    `gorm:"uniqueIndex:idx_chart_key;not null;default:''"   json:"location"`
	SampleSize int       `json:"sampleSize"`

	Period            datatypes.JSONType[ChartPeriod]     `gorm:"type:jsonb" json:"period"`
	Points            datatypes.JSONSlice[ChartPoint]     `gorm:"type:jsonb" json:"data"`
	ControlLimits     datatypes.JSONType[ChartLimits]     `gorm:"type:jsonb" json:"controlLimits"`
	ProcessCapability datatypes.JSONType[*spc.Capability] `gorm:"type:jsonb" json:"processCapability"`
	Violations        datatypes.JSONSlice[spc.Violation]  `gorm:"type:jsonb" json:"violations"`
	Status            string                              `gorm:"not null;default:'In Control'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns the public chart code.
func (c *ControlChart) BeforeCreate(tx *gorm.DB) error {
	if c.Code == "" {
		code, err := NewChartCode()
		if err != nil {
			return err
		}
		c.Code = code
	}
	return nil
}

const chartCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewChartCode returns a short unique chart identifier.
func NewChartCode() (string, error) {
	id, err := gonanoid.Generate(chartCodeAlphabet, 12)
	if err != nil {
		return "", err
	}
	return "CHART-" + id, nil
}
