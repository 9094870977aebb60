package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"p9e.in/aquasure/metrics"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/quality"
	"p9e.in/aquasure/pkg/spc"
	"p9e.in/aquasure/repository"
)

const (
	DefaultSubgroupSize = 5
	allLocations        = "All"
)

// XBarRQuery selects the samples and parameter of an X-bar/R chart.
type XBarRQuery struct {
	Window
	Parameter    string
	SubgroupSize int
	USL          *float64
	LSL          *float64
}

// XBarRReport is the chart result plus the stored chart's identity.
type XBarRReport struct {
	*spc.XBarRResult
	ChartID        string `json:"chartId"`
	Parameter      string `json:"parameter"`
	Location       string `json:"location"`
	SampleCount    int    `json:"sampleCount"`
	Interpretation string `json:"interpretation,omitempty"`
}

type PChartSummary struct {
	TotalInspected int `json:"totalInspected"`
	TotalDefective int `json:"totalDefective"`
}

type PChartReport struct {
	PChart    []spc.PPoint     `json:"pChart"`
	DailyData []spc.DailyCount `json:"dailyData"`
	Summary   PChartSummary    `json:"summary"`
	Status    string           `json:"status"`
}

// DefectCount is the number of non-compliant parameters of one sample.
type DefectCount struct {
	Sample  int    `json:"sample"`
	Date    string `json:"date"`
	Defects int    `json:"defects"`
}

type CChartReport struct {
	*spc.CChartResult
	DefectCounts []DefectCount `json:"defectCounts"`
}

// CapabilityQuery needs at least one specification limit.
type CapabilityQuery struct {
	Window
	Parameter string
	USL       *float64
	LSL       *float64
}

type CapabilityReport struct {
	*spc.Capability
	Computable     bool   `json:"computable"`
	Reason         string `json:"reason,omitempty"`
	Interpretation string `json:"interpretation"`
	SampleCount    int    `json:"sampleCount"`
}

// ReasonNoSpread is reported when every value of the parameter is identical.
const ReasonNoSpread = "data has no variation; capability is not computable"

type SPCService struct {
	samples SampleStore
	charts  ChartStore
	metrics *metrics.Metrics
	limit   int
}

func NewSPCService(samples SampleStore, charts ChartStore, m *metrics.Metrics, limit int) *SPCService {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	return &SPCService{samples: samples, charts: charts, metrics: m, limit: limit}
}

func (s *SPCService) fetch(ctx context.Context, w Window) ([]models.Sample, error) {
	samples, err := s.samples.Find(ctx, w.filter(s.limit, true))
	if err != nil {
		return nil, fmt.Errorf("load samples: %w", err)
	}
	return samples, nil
}

func parameterValues(samples []models.Sample, p quality.Parameter) []float64 {
	values := make([]float64, len(samples))
	for i := range samples {
		values[i] = p.Value(samples[i].Reading(), samples[i].QualityIndex)
	}
	return values
}

// XBarR computes the chart and stores it as the latest chart for its
// (type, parameter, location) key.
func (s *SPCService) XBarR(ctx context.Context, q XBarRQuery) (*XBarRReport, error) {
	param, err := quality.ParseParameter(q.Parameter)
	if err != nil {
		return nil, err
	}
	if q.SubgroupSize == 0 {
		q.SubgroupSize = DefaultSubgroupSize
	}

	samples, err := s.fetch(ctx, q.Window)
	if err != nil {
		return nil, err
	}
	res, err := spc.BuildXBarRChart(parameterValues(samples, param), q.SubgroupSize, q.USL, q.LSL)
	if err != nil {
		return nil, err
	}

	location := q.Location
	if location == "" {
		location = allLocations
	}
	chart := newXBarRChart(res, samples, string(param), location, q)
	if err := s.charts.Upsert(ctx, chart); err != nil {
		return nil, fmt.Errorf("store control chart: %w", err)
	}
	s.metrics.ChartEvaluated(models.ChartXBarR, res.Status)

	return &XBarRReport{
		XBarRResult:    res,
		ChartID:        chart.Code,
		Parameter:      string(param),
		Location:       location,
		SampleCount:    len(samples),
		Interpretation: res.Capability.Interpretation(),
	}, nil
}

func newXBarRChart(res *spc.XBarRResult, samples []models.Sample, param, location string, q XBarRQuery) *models.ControlChart {
	period := models.ChartPeriod{StartDate: q.From, EndDate: q.To}
	if period.StartDate == nil {
		period.StartDate = &samples[0].Timestamp
	}
	if period.EndDate == nil {
		period.EndDate = &samples[len(samples)-1].Timestamp
	}

	points := make([]models.ChartPoint, len(res.Points))
	for i, p := range res.Points {
		date := samples[p.Start].Timestamp
		points[i] = models.ChartPoint{
			Subgroup: p.Subgroup,
			Values:   p.Values,
			Average:  p.Average,
			Range:    p.Range,
			Date:     &date,
		}
	}

	return &models.ControlChart{
		Type:              models.ChartXBarR,
		Parameter:         param,
		Location:          location,
		SampleSize:        q.SubgroupSize,
		Period:            datatypes.NewJSONType(period),
		Points:            points,
		ControlLimits:     datatypes.NewJSONType(models.ChartLimits{Limits: res.XBar.Limits, USL: q.USL, LSL: q.LSL}),
		ProcessCapability: datatypes.NewJSONType(res.Capability),
		Violations:        res.Violations,
		Status:            res.Status,
	}
}

// PChart treats every sample as one inspection; Unsafe or non-compliant
// samples are defective. Days are UTC calendar days. The chart is out of
// control when any day falls outside its own limits.
func (s *SPCService) PChart(ctx context.Context, w Window) (*PChartReport, error) {
	samples, err := s.fetch(ctx, w)
	if err != nil {
		return nil, err
	}

	var days []spc.DailyCount
	index := map[string]int{}
	for i := range samples {
		date := samples[i].Timestamp.UTC().Format("2006-01-02")
		j, ok := index[date]
		if !ok {
			j = len(days)
			index[date] = j
			days = append(days, spc.DailyCount{Date: date})
		}
		days[j].Inspected++
		if samples[i].HasIssue() {
			days[j].Defective++
		}
	}

	points := spc.CalculatePChart(days)
	if points == nil {
		return nil, spc.ErrInsufficientData
	}
	report := &PChartReport{PChart: points, DailyData: days, Status: spc.StatusInControl}
	for _, d := range days {
		report.Summary.TotalInspected += d.Inspected
		report.Summary.TotalDefective += d.Defective
	}
	for _, p := range points {
		if p.Value > p.UCL || p.Value < p.LCL {
			report.Status = spc.StatusOutOfControl
			break
		}
	}
	s.metrics.ChartEvaluated(models.ChartP, report.Status)
	return report, nil
}

// CChart charts the number of non-compliant parameters per sample.
func (s *SPCService) CChart(ctx context.Context, w Window) (*CChartReport, error) {
	samples, err := s.fetch(ctx, w)
	if err != nil {
		return nil, err
	}

	counts := make([]float64, len(samples))
	defects := make([]DefectCount, len(samples))
	for i := range samples {
		n := len(samples[i].NonCompliantParams)
		counts[i] = float64(n)
		defects[i] = DefectCount{
			Sample:  i + 1,
			Date:    samples[i].Timestamp.UTC().Format(time.RFC3339),
			Defects: n,
		}
	}

	res, err := spc.BuildCChart(counts)
	if err != nil {
		return nil, err
	}
	s.metrics.ChartEvaluated(models.ChartC, res.Status)
	return &CChartReport{CChartResult: res, DefectCounts: defects}, nil
}

// Capability computes Cp/Cpk for one parameter. The capability is absent when
// the data has no spread.
func (s *SPCService) Capability(ctx context.Context, q CapabilityQuery) (*CapabilityReport, error) {
	if q.USL == nil && q.LSL == nil {
		return nil, fmt.Errorf("%w: USL or LSL required", ErrValidation)
	}
	param, err := quality.ParseParameter(q.Parameter)
	if err != nil {
		return nil, err
	}
	samples, err := s.fetch(ctx, q.Window)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, spc.ErrInsufficientData
	}

	c := spc.CalculateProcessCapability(parameterValues(samples, param), q.USL, q.LSL)
	report := &CapabilityReport{
		Capability:     c,
		Computable:     c != nil,
		Interpretation: c.Interpretation(),
		SampleCount:    len(samples),
	}
	if c == nil {
		report.Reason = ReasonNoSpread
	}
	return report, nil
}

func (s *SPCService) Charts(ctx context.Context, f repository.ChartFilter) ([]models.ControlChart, error) {
	return s.charts.List(ctx, f)
}

func (s *SPCService) Chart(ctx context.Context, code string) (*models.ControlChart, error) {
	return s.charts.GetByCode(ctx, code)
}
