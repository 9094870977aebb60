package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"p9e.in/aquasure/metrics"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/quality"
	"p9e.in/aquasure/repository"
	"p9e.in/aquasure/utils"
)

// SampleInput is a new reading. The four scored parameters are required.
type SampleInput struct {
	Location    string     `json:"location"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	PH          *float64   `json:"ph"`
	TDS         *float64   `json:"tds"`
	Turbidity   *float64   `json:"turbidity"`
	Chlorine    *float64   `json:"chlorine"`
	Temperature *float64   `json:"temperature,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// SampleUpdate patches a sample; nil fields are left alone.
type SampleUpdate struct {
	Location    *string    `json:"location,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	PH          *float64   `json:"ph,omitempty"`
	TDS         *float64   `json:"tds,omitempty"`
	Turbidity   *float64   `json:"turbidity,omitempty"`
	Chlorine    *float64   `json:"chlorine,omitempty"`
	Temperature *float64   `json:"temperature,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// CorrectiveActionInput is a follow-up logged against a sample.
type CorrectiveActionInput struct {
	Action     string     `json:"action"`
	AssignedTo string     `json:"assignedTo"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
}

// SampleStats summarises samples in a window.
type SampleStats struct {
	Total               int                    `json:"total"`
	Safe                int                    `json:"safe"`
	Borderline          int                    `json:"borderline"`
	Unsafe              int                    `json:"unsafe"`
	Compliant           int                    `json:"compliant"`
	AverageQualityIndex float64                `json:"avgQualityIndex"`
	AveragePH           float64                `json:"avgPH"`
	AverageTDS          float64                `json:"avgTDS"`
	QualityKPI          *utils.KPIMetrics      `json:"qualityKpi,omitempty"`
	Daily               []utils.TimeSeriesData `json:"daily"`
	MovingAverage       []utils.TimeSeriesData `json:"movingAverage"`
}

const (
	unassigned        = "Unassigned"
	movingAverageDays = 7
	targetQuality     = 80
)

type SampleService struct {
	samples   SampleStore
	locations LocationStore
	metrics   *metrics.Metrics
	analytics *utils.AnalyticsEngine
	limit     int
}

func NewSampleService(samples SampleStore, locations LocationStore, m *metrics.Metrics, limit int) *SampleService {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	return &SampleService{
		samples:   samples,
		locations: locations,
		metrics:   m,
		analytics: utils.NewAnalyticsEngine(),
		limit:     limit,
	}
}

// Create validates, scores and stores a reading, then folds it into the
// location statistics. source labels the ingestion path in metrics.
func (s *SampleService) Create(ctx context.Context, in SampleInput, source string) (*models.Sample, error) {
	var missing []string
	for _, p := range []struct {
		name string
		v    *float64
	}{{"ph", in.PH}, {"tds", in.TDS}, {"turbidity", in.Turbidity}, {"chlorine", in.Chlorine}} {
		if p.v == nil {
			missing = append(missing, p.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	sample := &models.Sample{
		Location:    strings.TrimSpace(in.Location),
		Timestamp:   time.Now().UTC(),
		PH:          *in.PH,
		TDS:         *in.TDS,
		Turbidity:   *in.Turbidity,
		Chlorine:    *in.Chlorine,
		Temperature: in.Temperature,
		Notes:       in.Notes,
	}
	if in.Timestamp != nil {
		sample.Timestamp = *in.Timestamp
	}
	if err := sample.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	sample.Apply()

	if err := s.samples.Create(ctx, sample); err != nil {
		return nil, fmt.Errorf("create sample: %w", err)
	}
	if err := s.locations.RecordSample(ctx, sample.Location, sample.Timestamp, sample.QualityIndex); err != nil {
		log.Printf("⚠️  Failed to update location %q: %v", sample.Location, err)
	}
	s.metrics.SampleIngested(source, string(sample.Status))
	return sample, nil
}

func (s *SampleService) Get(ctx context.Context, id uuid.UUID) (*models.Sample, error) {
	return s.samples.Get(ctx, id)
}

// List returns the newest samples first, capped at the configured limit.
func (s *SampleService) List(ctx context.Context, f repository.SampleFilter) ([]models.Sample, error) {
	if f.Limit <= 0 || f.Limit > s.limit {
		f.Limit = s.limit
	}
	return s.samples.Find(ctx, f)
}

// Update applies a patch and re-scores when any reading changed.
func (s *SampleService) Update(ctx context.Context, id uuid.UUID, in SampleUpdate) (*models.Sample, error) {
	sample, err := s.samples.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Location != nil {
		sample.Location = strings.TrimSpace(*in.Location)
	}
	if in.Timestamp != nil {
		sample.Timestamp = *in.Timestamp
	}
	if in.Temperature != nil {
		sample.Temperature = in.Temperature
	}
	if in.Notes != nil {
		sample.Notes = *in.Notes
	}
	rescore := false
	for _, p := range []struct {
		dst *float64
		src *float64
	}{
		{&sample.PH, in.PH},
		{&sample.TDS, in.TDS},
		{&sample.Turbidity, in.Turbidity},
		{&sample.Chlorine, in.Chlorine},
	} {
		if p.src != nil {
			*p.dst = *p.src
			rescore = true
		}
	}

	if err := sample.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if rescore {
		sample.Apply()
	}
	if err := s.samples.Save(ctx, sample); err != nil {
		return nil, fmt.Errorf("update sample: %w", err)
	}
	return sample, nil
}

func (s *SampleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.samples.Delete(ctx, id)
}

// Verify marks a sample verified or clears the verification.
func (s *SampleService) Verify(ctx context.Context, id uuid.UUID, verified bool, by string) (*models.Sample, error) {
	sample, err := s.samples.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sample.Verified = verified
	sample.VerifiedBy, sample.VerifiedAt = nil, nil
	if verified {
		now := time.Now().UTC()
		sample.VerifiedAt = &now
		if by != "" {
			sample.VerifiedBy = &by
		}
	}
	if err := s.samples.Save(ctx, sample); err != nil {
		return nil, fmt.Errorf("verify sample: %w", err)
	}
	return sample, nil
}

// AddCorrectiveAction appends a pending action to the sample.
func (s *SampleService) AddCorrectiveAction(ctx context.Context, id uuid.UUID, in CorrectiveActionInput) (*models.Sample, error) {
	if strings.TrimSpace(in.Action) == "" {
		return nil, fmt.Errorf("%w: action is required", ErrValidation)
	}
	sample, err := s.samples.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	assigned := strings.TrimSpace(in.AssignedTo)
	if assigned == "" {
		assigned = unassigned
	}
	sample.CorrectiveActions = append(sample.CorrectiveActions, models.CorrectiveAction{
		Action:     in.Action,
		AssignedTo: assigned,
		DueDate:    in.DueDate,
		Status:     models.ActionPending,
		CreatedAt:  time.Now().UTC(),
	})
	if err := s.samples.Save(ctx, sample); err != nil {
		return nil, fmt.Errorf("add corrective action: %w", err)
	}
	return sample, nil
}

// Statistics counts samples by status and averages their readings. The
// quality KPI compares the second half of the window with the first.
func (s *SampleService) Statistics(ctx context.Context, w Window) (*SampleStats, error) {
	samples, err := s.samples.Find(ctx, w.filter(s.limit, true))
	if err != nil {
		return nil, err
	}

	st := &SampleStats{Total: len(samples), Daily: []utils.TimeSeriesData{}, MovingAverage: []utils.TimeSeriesData{}}
	if len(samples) == 0 {
		return st, nil
	}

	var qi, ph, tds float64
	obs := make([]utils.Observation, len(samples))
	for i, sm := range samples {
		switch sm.Status {
		case quality.StatusSafe:
			st.Safe++
		case quality.StatusBorderline:
			st.Borderline++
		case quality.StatusUnsafe:
			st.Unsafe++
		}
		if sm.IsCompliant {
			st.Compliant++
		}
		qi += float64(sm.QualityIndex)
		ph += sm.PH
		tds += sm.TDS
		obs[i] = utils.Observation{At: sm.Timestamp, Value: float64(sm.QualityIndex)}
	}
	n := float64(len(samples))
	st.AverageQualityIndex = round2(qi / n)
	st.AveragePH = round2(ph / n)
	st.AverageTDS = round2(tds / n)

	st.Daily = s.analytics.GroupByDay(obs)
	st.MovingAverage = s.analytics.CalculateMovingAverage(st.Daily, movingAverageDays)

	if len(samples) >= 2 {
		half := len(samples) / 2
		var prev, curr float64
		for i, o := range obs {
			if i < half {
				prev += o.Value
			} else {
				curr += o.Value
			}
		}
		st.QualityKPI = s.analytics.CalculateKPI(
			round2(curr/float64(len(obs)-half)),
			round2(prev/float64(half)),
			targetQuality,
		)
	}
	return st, nil
}

// Locations lists the known sampling points.
func (s *SampleService) Locations(ctx context.Context, activeOnly bool) ([]models.Location, error) {
	return s.locations.List(ctx, activeOnly)
}

// UpdateLocation edits a location's address, coordinates, type or active
// flag. Coordinates must be given together.
func (s *SampleService) UpdateLocation(ctx context.Context, name string, d repository.LocationDetails) (*models.Location, error) {
	if (d.Latitude == nil) != (d.Longitude == nil) {
		return nil, fmt.Errorf("%w: latitude and longitude must be set together", ErrValidation)
	}
	if d.Latitude != nil {
		if err := utils.ValidateCoordinate(utils.Coordinate{Lat: *d.Latitude, Lng: *d.Longitude}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if d.Type != nil {
		switch *d.Type {
		case models.LocationResidential, models.LocationCommercial, models.LocationIndustrial, models.LocationPublic, models.LocationOther:
		default:
			return nil, fmt.Errorf("%w: unknown location type %q", ErrValidation, *d.Type)
		}
	}
	return s.locations.UpdateDetails(ctx, name, d)
}

// IsValidation reports whether err should be shown to the caller as bad input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, models.ErrInvalidSample)
}
