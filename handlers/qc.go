package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"p9e.in/aquasure/config"
	"p9e.in/aquasure/pkg/qc"
	"p9e.in/aquasure/services"
)

// QCHandler serves the seven quality-control tools under /api/qc.
type QCHandler struct {
	qc *services.QCService
}

func NewQCHandler(qc *services.QCService) *QCHandler {
	return &QCHandler{qc: qc}
}

// Pareto godoc
// @Summary Pareto analysis of non-compliant parameters
// @Tags qc
// @Produce json
// @Success 200 {object} services.ParetoReport
// @Router /api/qc-tools/pareto [get]
func (h *QCHandler) Pareto(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := h.qc.Pareto(r.Context(), win)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Histogram godoc
// @Summary Histogram of one parameter
// @Tags qc
// @Produce json
// @Param parameter query string true "Parameter"
// @Param bins query int false "Bin count (default 10, max 1000)"
// @Success 200 {object} services.HistogramReport
// @Router /api/qc-tools/histogram [get]
func (h *QCHandler) Histogram(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	parameter := r.URL.Query().Get("parameter")
	if parameter == "" {
		writeError(w, badRequest("parameter is required"))
		return
	}
	bins, err := queryInt(r, "bins", services.DefaultBins)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := h.qc.Histogram(r.Context(), win, parameter, bins)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Scatter godoc
// @Summary Pearson correlation between two parameters
// @Tags qc
// @Produce json
// @Param paramX query string false "X parameter (default ph)"
// @Param paramY query string false "Y parameter (default tds)"
// @Success 200 {object} services.ScatterReport
// @Router /api/qc-tools/scatter [get]
func (h *QCHandler) Scatter(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	query := r.URL.Query()
	report, err := h.qc.Scatter(r.Context(), win, query.Get("paramX"), query.Get("paramY"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *QCHandler) CheckSheet(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sheet, err := h.qc.CheckSheet(r.Context(), win)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (h *QCHandler) ProcessFlow(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	flow, err := h.qc.ProcessFlow(r.Context(), win)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flow)
}

// Fishbone returns the cause-and-effect diagram for ?problem=, enriched with
// causes for recently failing parameters.
func (h *QCHandler) Fishbone(w http.ResponseWriter, r *http.Request) {
	diagram, err := h.qc.Fishbone(r.Context(), strings.TrimSpace(r.URL.Query().Get("problem")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, diagram)
}

// CreateFishbone starts a blank diagram for a user-described problem.
func (h *QCHandler) CreateFishbone(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Problem string `json:"problem"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	problem := strings.TrimSpace(body.Problem)
	if problem == "" {
		problem = qc.DefaultEffect
	}
	writeJSON(w, http.StatusCreated, qc.EmptyFishbone(problem))
}

// SeedNonCompliant godoc
// @Summary Insert demo samples that each break a threshold
// @Tags qc
// @Accept json
// @Produce json
// @Param request body object false "count (default 8) and location (default Jaipur)"
// @Success 201 {object} map[string]interface{}
// @Router /api/qc-tools/seed/noncompliant [post]
func (h *QCHandler) SeedNonCompliant(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Count    *int   `json:"count"`
		Location string `json:"location"`
	}{}
	if err := decodeOptionalJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	count := config.DefaultSeedCount
	if body.Count != nil {
		count = *body.Count
	}
	if count < 1 {
		writeError(w, badRequest("count must be positive"))
		return
	}
	location := strings.TrimSpace(body.Location)
	if location == "" {
		location = config.DefaultSeedLocation
	}
	samples, err := h.qc.SeedNonCompliant(r.Context(), count, location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": fmt.Sprintf("Seeded %d non-compliant samples at %s", len(samples), location),
		"samples": samples,
	})
}
