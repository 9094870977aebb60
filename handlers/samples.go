package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"p9e.in/aquasure/pkg/quality"
	"p9e.in/aquasure/repository"
	"p9e.in/aquasure/services"
)

// SampleHandler serves /api/samples.
type SampleHandler struct {
	samples *services.SampleService
	export  exporter
}

// NewSampleHandler builds the handler; archiver may be nil.
func NewSampleHandler(samples *services.SampleService, archiver Archiver) *SampleHandler {
	return &SampleHandler{samples: samples, export: exporter{archiver: archiver}}
}

// sampleFilter reads the list query: location, status, startDate, endDate,
// limit and sort (asc|desc).
func sampleFilter(r *http.Request) (repository.SampleFilter, error) {
	w, err := parseWindow(r)
	if err != nil {
		return repository.SampleFilter{}, err
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		return repository.SampleFilter{}, err
	}
	f := repository.SampleFilter{
		Location:  w.Location,
		From:      w.From,
		To:        w.To,
		Limit:     limit,
		Ascending: strings.EqualFold(r.URL.Query().Get("sort"), "asc"),
	}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		switch st := quality.Status(status); st {
		case quality.StatusSafe, quality.StatusBorderline, quality.StatusUnsafe:
			f.Status = st
		default:
			return f, badRequest("unknown status %q", status)
		}
	}
	return f, nil
}

// CreateSample godoc
// @Summary Record a water sample
// @Tags samples
// @Accept json
// @Produce json
// @Param sample body services.SampleInput true "Sample readings"
// @Success 201 {object} models.Sample
// @Router /api/samples [post]
func (h *SampleHandler) CreateSample(w http.ResponseWriter, r *http.Request) {
	var in services.SampleInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	sample, err := h.samples.Create(r.Context(), in, "api")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sample)
}

// ListSamples godoc
// @Summary List samples
// @Tags samples
// @Produce json
// @Param location query string false "Location"
// @Param status query string false "Safe, Borderline or Unsafe"
// @Param startDate query string false "Window start"
// @Param endDate query string false "Window end"
// @Param limit query int false "Maximum rows"
// @Param sort query string false "asc or desc"
// @Success 200 {array} models.Sample
// @Router /api/samples [get]
func (h *SampleHandler) ListSamples(w http.ResponseWriter, r *http.Request) {
	f, err := sampleFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	samples, err := h.samples.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, samples)
}

func (h *SampleHandler) GetSample(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sample, err := h.samples.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (h *SampleHandler) UpdateSample(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in services.SampleUpdate
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	sample, err := h.samples.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (h *SampleHandler) DeleteSample(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.samples.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sample deleted"})
}

// VerifySample marks a sample as checked by an auditor.
func (h *SampleHandler) VerifySample(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Verified   *bool  `json:"verified"`
		VerifiedBy string `json:"verifiedBy"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	verified := true
	if body.Verified != nil {
		verified = *body.Verified
	}
	sample, err := h.samples.Verify(r.Context(), id, verified, body.VerifiedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (h *SampleHandler) AddCorrectiveAction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in services.CorrectiveActionInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	sample, err := h.samples.AddCorrectiveAction(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sample)
}

// SampleStatistics godoc
// @Summary Sample statistics and quality KPI for a window
// @Tags samples
// @Produce json
// @Success 200 {object} services.SampleStats
// @Router /api/samples/stats [get]
func (h *SampleHandler) SampleStatistics(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := h.samples.Statistics(r.Context(), win)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ExportSamples downloads the filtered samples as xlsx (default) or csv.
func (h *SampleHandler) ExportSamples(w http.ResponseWriter, r *http.Request) {
	f, err := sampleFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	samples, err := h.samples.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}

	name := "samples"
	if f.Location != "" {
		name = sanitizeFilename(f.Location) + "_samples"
	}
	stamp := time.Now().Format("20060102_150405")

	switch format := strings.ToLower(r.URL.Query().Get("format")); format {
	case "", "xlsx", "excel":
		data, err := createSamplesWorkbook(samples)
		if err != nil {
			writeError(w, fmt.Errorf("create workbook: %w", err))
			return
		}
		h.export.send(w, r, "exports/samples", fmt.Sprintf("%s_%s.xlsx", name, stamp), xlsxContentType, data)
	case "csv":
		data, err := createSamplesCSV(samples)
		if err != nil {
			writeError(w, fmt.Errorf("create csv: %w", err))
			return
		}
		h.export.send(w, r, "exports/samples", fmt.Sprintf("%s_%s.csv", name, stamp), "text/csv", data)
	default:
		writeError(w, badRequest("unsupported export format %q", format))
	}
}
