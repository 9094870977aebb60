package qc

import "p9e.in/aquasure/pkg/quality"

// DefaultEffect is the fishbone effect used when none is given.
const DefaultEffect = "Water Quality Non-Compliance"

// Fishbone cause categories.
const (
	CategoryMan         = "Man (People)"
	CategoryMachine     = "Machine (Equipment)"
	CategoryMaterial    = "Material"
	CategoryMethod      = "Method (Process)"
	CategoryMeasurement = "Measurement"
	CategoryEnvironment = "Environment"
)

var categoryOrder = []string{
	CategoryMan, CategoryMachine, CategoryMaterial,
	CategoryMethod, CategoryMeasurement, CategoryEnvironment,
}

// CauseCategory is one bone of the diagram.
type CauseCategory struct {
	Name   string   `json:"name"`
	Causes []string `json:"causes"`
}

// FishboneDiagram is a cause-and-effect diagram.
type FishboneDiagram struct {
	Effect     string          `json:"effect"`
	Categories []CauseCategory `json:"categories"`
	RootCauses []string        `json:"rootCauses"`
}

func baseCauses() map[string][]string {
	return map[string][]string{
		CategoryMan: {
			"Insufficient training on sampling procedures",
			"Human error in data entry",
			"Improper sample collection technique",
		},
		CategoryMachine: {
			"Calibration issues with pH meter",
			"TDS meter malfunction",
			"Turbidity meter not calibrated",
			"Chlorine testing equipment outdated",
		},
		CategoryMaterial: {
			"Source water contamination",
			"Treatment chemicals expired",
			"Poor quality source water",
			"Insufficient treatment chemicals",
		},
		CategoryMethod: {
			"Inadequate chlorination process",
			"Filtration system not working properly",
			"pH adjustment process failure",
			"Insufficient treatment time",
		},
		CategoryMeasurement: {
			"Incorrect measurement techniques",
			"Measurement timing issues",
			"Equipment calibration errors",
			"Sample contamination during testing",
		},
		CategoryEnvironment: {
			"High temperature affecting water quality",
			"Seasonal variations",
			"Industrial pollution in source",
			"Heavy rainfall affecting source water",
		},
	}
}

type extraCause struct {
	category string
	cause    string
}

// parameterCauses are appended when a parameter has been seen out of range.
var parameterCauses = map[string][]extraCause{
	quality.LabelPH: {
		{CategoryMachine, "pH meter calibration drift"},
		{CategoryMethod, "pH adjustment process not effective"},
	},
	quality.LabelTDS: {
		{CategoryMaterial, "High TDS in source water"},
		{CategoryMethod, "Filtration system insufficient"},
	},
	quality.LabelTurbidity: {
		{CategoryMethod, "Coagulation process not working"},
		{CategoryMaterial, "High turbidity in source water"},
	},
	quality.LabelChlorine: {
		{CategoryMethod, "Chlorination dosage incorrect"},
		{CategoryMachine, "Chlorine dosing pump malfunction"},
	},
}

// Fishbone builds the six-category diagram with the standard causes, plus
// parameter specific causes for every label in nonCompliant.
func Fishbone(effect string, nonCompliant []string) *FishboneDiagram {
	if effect == "" {
		effect = DefaultEffect
	}
	causes := baseCauses()

	seen := make(map[string]bool, len(nonCompliant))
	for _, label := range nonCompliant {
		seen[label] = true
	}
	for _, label := range []string{quality.LabelPH, quality.LabelTDS, quality.LabelTurbidity, quality.LabelChlorine} {
		if !seen[label] {
			continue
		}
		for _, e := range parameterCauses[label] {
			causes[e.category] = append(causes[e.category], e.cause)
		}
	}

	d := &FishboneDiagram{Effect: effect, RootCauses: []string{}}
	for _, name := range categoryOrder {
		d.Categories = append(d.Categories, CauseCategory{Name: name, Causes: causes[name]})
	}
	return d
}

// EmptyFishbone returns the bare six-category skeleton for manual analysis.
func EmptyFishbone(effect string) *FishboneDiagram {
	d := &FishboneDiagram{Effect: effect, RootCauses: []string{}}
	for _, name := range categoryOrder {
		d.Categories = append(d.Categories, CauseCategory{Name: name, Causes: []string{}})
	}
	return d
}
