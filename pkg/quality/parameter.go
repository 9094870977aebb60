package quality

import (
	"errors"
	"fmt"
)

// ErrUnknownParameter is returned when a caller names a parameter the
// analytics endpoints do not know about.
var ErrUnknownParameter = errors.New("unknown parameter")

// Parameter identifies a numeric field of a sample.
type Parameter string

const (
	ParamPH           Parameter = "ph"
	ParamTDS          Parameter = "tds"
	ParamTurbidity    Parameter = "turbidity"
	ParamChlorine     Parameter = "chlorine"
	ParamQualityIndex Parameter = "qualityIndex"
)

// Labels used in compliance results and check sheets.
const (
	LabelPH        = "pH"
	LabelTDS       = "TDS"
	LabelTurbidity = "Turbidity"
	LabelChlorine  = "Chlorine"
)

// Readings lists the four measured parameters in their canonical order.
var Readings = []Parameter{ParamPH, ParamTDS, ParamTurbidity, ParamChlorine}

// ParseParameter validates a parameter name coming from a query string.
func ParseParameter(name string) (Parameter, error) {
	switch p := Parameter(name); p {
	case ParamPH, ParamTDS, ParamTurbidity, ParamChlorine, ParamQualityIndex:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// Value picks the parameter out of a reading; qualityIndex is returned for
// ParamQualityIndex since it is derived rather than measured.
func (p Parameter) Value(r Reading, qualityIndex int) float64 {
	switch p {
	case ParamPH:
		return r.PH
	case ParamTDS:
		return r.TDS
	case ParamTurbidity:
		return r.Turbidity
	case ParamChlorine:
		return r.Chlorine
	default:
		return float64(qualityIndex)
	}
}
