package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"p9e.in/aquasure/config"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/qc"
	"p9e.in/aquasure/pkg/quality"
	"p9e.in/aquasure/pkg/stats"
)

const (
	DefaultBins        = 10
	fishboneSampleSize = 100
	allCompliantNote   = "No non-compliant parameters found. All samples are compliant!"
)

type ParetoSummary struct {
	TotalNonCompliances int    `json:"totalNonCompliances"`
	TotalSamples        int    `json:"totalSamples"`
	Message             string `json:"message,omitempty"`
}

type ParetoReport struct {
	Pareto  []qc.ParetoEntry `json:"pareto"`
	Summary ParetoSummary    `json:"summary"`
}

type HistogramReport struct {
	Histogram   []qc.Bin       `json:"histogram"`
	Parameter   string         `json:"parameter"`
	SampleCount int            `json:"sampleCount"`
	Statistics  *stats.Summary `json:"statistics"`
}

type ScatterReport struct {
	*qc.CorrelationResult
	ParamX      string `json:"paramX"`
	ParamY      string `json:"paramY"`
	SampleCount int    `json:"sampleCount"`
}

type QCService struct {
	samples   SampleStore
	locations LocationStore
	limit     int
}

func NewQCService(samples SampleStore, locations LocationStore, limit int) *QCService {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	return &QCService{samples: samples, locations: locations, limit: limit}
}

func (s *QCService) fetch(ctx context.Context, w Window, limit int) ([]models.Sample, error) {
	samples, err := s.samples.Find(ctx, w.filter(limit, true))
	if err != nil {
		return nil, fmt.Errorf("load samples: %w", err)
	}
	return samples, nil
}

// Pareto ranks non-compliant parameters by how often they occur. A fully
// compliant window yields an empty chart with a message.
func (s *QCService) Pareto(ctx context.Context, w Window) (*ParetoReport, error) {
	samples, err := s.fetch(ctx, w, s.limit)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	var order []string
	total := 0
	for _, sm := range samples {
		for _, p := range sm.NonCompliantParams {
			if _, ok := counts[p]; !ok {
				order = append(order, p)
			}
			counts[p]++
			total++
		}
	}

	report := &ParetoReport{
		Pareto:  []qc.ParetoEntry{},
		Summary: ParetoSummary{TotalNonCompliances: total, TotalSamples: len(samples)},
	}
	if total == 0 {
		report.Summary.Message = allCompliantNote
		return report, nil
	}

	categories := make([]qc.CategoryCount, len(order))
	for i, p := range order {
		categories[i] = qc.CategoryCount{Category: p, Count: counts[p]}
	}
	entries, err := qc.Pareto(categories)
	if err != nil {
		return nil, err
	}
	report.Pareto = entries
	return report, nil
}

// Histogram bins one parameter and describes its distribution.
func (s *QCService) Histogram(ctx context.Context, w Window, parameter string, bins int) (*HistogramReport, error) {
	if parameter == "" {
		return nil, fmt.Errorf("%w: parameter is required", ErrValidation)
	}
	param, err := quality.ParseParameter(parameter)
	if err != nil {
		return nil, err
	}
	if bins == 0 {
		bins = DefaultBins
	}
	samples, err := s.fetch(ctx, w, s.limit)
	if err != nil {
		return nil, err
	}

	values := parameterValues(samples, param)
	hist, err := qc.Histogram(values, bins)
	if err != nil {
		return nil, err
	}
	return &HistogramReport{
		Histogram:   hist,
		Parameter:   string(param),
		SampleCount: len(samples),
		Statistics:  stats.Summarize(values),
	}, nil
}

// Scatter correlates two parameters, ph against tds by default.
func (s *QCService) Scatter(ctx context.Context, w Window, paramX, paramY string) (*ScatterReport, error) {
	if paramX == "" {
		paramX = string(quality.ParamPH)
	}
	if paramY == "" {
		paramY = string(quality.ParamTDS)
	}
	px, err := quality.ParseParameter(paramX)
	if err != nil {
		return nil, err
	}
	py, err := quality.ParseParameter(paramY)
	if err != nil {
		return nil, err
	}
	samples, err := s.fetch(ctx, w, s.limit)
	if err != nil {
		return nil, err
	}

	corr, err := qc.Correlation(parameterValues(samples, px), parameterValues(samples, py))
	if err != nil {
		return nil, err
	}
	return &ScatterReport{CorrelationResult: corr, ParamX: paramX, ParamY: paramY, SampleCount: len(samples)}, nil
}

// CheckSheet tallies non-compliant parameters per UTC day. Categories appear
// in the order they are first seen.
func (s *QCService) CheckSheet(ctx context.Context, w Window) (*qc.CheckSheet, error) {
	samples, err := s.fetch(ctx, w, s.limit)
	if err != nil {
		return nil, err
	}

	categories := []string{}
	seen := map[string]bool{}
	var days []qc.DayEntry
	index := map[string]int{}
	for _, sm := range samples {
		date := sm.Timestamp.UTC().Format("2006-01-02")
		j, ok := index[date]
		if !ok {
			j = len(days)
			index[date] = j
			days = append(days, qc.DayEntry{Date: date, Defects: map[string]int{}})
		}
		for _, p := range sm.NonCompliantParams {
			if !seen[p] {
				seen[p] = true
				categories = append(categories, p)
			}
			days[j].Defects[p]++
		}
	}
	return qc.CreateCheckSheet(categories, days), nil
}

// ProcessFlow treats each location as a step: duration is its sample count
// and defects the total of its non-compliant parameters.
func (s *QCService) ProcessFlow(ctx context.Context, w Window) (*qc.ProcessFlow, error) {
	samples, err := s.fetch(ctx, w, s.limit)
	if err != nil {
		return nil, err
	}

	type group struct {
		count, defects int
		qualitySum     float64
	}
	groups := map[string]*group{}
	var order []string
	for _, sm := range samples {
		loc := sm.Location
		if loc == "" {
			loc = "Unknown"
		}
		g, ok := groups[loc]
		if !ok {
			g = &group{}
			groups[loc] = g
			order = append(order, loc)
		}
		g.count++
		g.defects += len(sm.NonCompliantParams)
		g.qualitySum += float64(sm.QualityIndex)
	}

	steps := make([]qc.Step, len(order))
	for i, loc := range order {
		g := groups[loc]
		steps[i] = qc.Step{
			ID:           i + 1,
			Name:         loc,
			Duration:     float64(g.count),
			Defects:      g.defects,
			QualityIndex: round2(g.qualitySum / float64(g.count)),
		}
	}
	return qc.AnalyzeProcessFlow(steps)
}

// Fishbone extends the standard diagram with causes for the parameters that
// failed in the most recent samples.
func (s *QCService) Fishbone(ctx context.Context, effect string) (*qc.FishboneDiagram, error) {
	samples, err := s.samples.Find(ctx, Window{}.filter(fishboneSampleSize, false))
	if err != nil {
		return nil, fmt.Errorf("load samples: %w", err)
	}
	seen := map[string]bool{}
	var labels []string
	for _, sm := range samples {
		for _, p := range sm.NonCompliantParams {
			if !seen[p] {
				seen[p] = true
				labels = append(labels, p)
			}
		}
	}
	sort.Strings(labels)
	return qc.Fishbone(effect, labels), nil
}

// SeedNonCompliant stores demo samples that each break a threshold.
func (s *QCService) SeedNonCompliant(ctx context.Context, count int, location string) ([]models.Sample, error) {
	samples := config.NonCompliantSamples(count, location, time.Now().UTC())
	for i := range samples {
		if err := s.samples.Create(ctx, &samples[i]); err != nil {
			return nil, fmt.Errorf("seed sample: %w", err)
		}
		if err := s.locations.RecordSample(ctx, samples[i].Location, samples[i].Timestamp, samples[i].QualityIndex); err != nil {
			log.Printf("⚠️  Failed to update location %q: %v", samples[i].Location, err)
		}
	}
	log.Printf("🌱 Seeded %d non-compliant samples at %s", len(samples), samples[0].Location)
	return samples, nil
}
