package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"p9e.in/aquasure/repository"
	"p9e.in/aquasure/services"
)

// SPCHandler serves /api/spc.
type SPCHandler struct {
	spc    *services.SPCService
	export exporter
}

func NewSPCHandler(spc *services.SPCService, archiver Archiver) *SPCHandler {
	return &SPCHandler{spc: spc, export: exporter{archiver: archiver}}
}

// specLimits reads the optional usl and lsl query parameters.
func specLimits(r *http.Request) (usl, lsl *float64, err error) {
	if usl, err = queryFloat(r, "usl"); err != nil {
		return nil, nil, err
	}
	if lsl, err = queryFloat(r, "lsl"); err != nil {
		return nil, nil, err
	}
	return usl, lsl, nil
}

// XBarRChart godoc
// @Summary X-bar and R control chart for one parameter
// @Tags spc
// @Produce json
// @Param parameter query string true "ph, tds, turbidity, chlorine or qualityIndex"
// @Param subgroupSize query int false "Subgroup size (default 5)"
// @Param usl query number false "Upper specification limit"
// @Param lsl query number false "Lower specification limit"
// @Success 200 {object} services.XBarRReport
// @Failure 422 {object} map[string]string
// @Router /api/spc/xbar-r-chart [get]
func (h *SPCHandler) XBarRChart(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := services.XBarRQuery{Window: win, Parameter: r.URL.Query().Get("parameter")}
	if q.Parameter == "" {
		writeError(w, badRequest("parameter is required"))
		return
	}
	if q.SubgroupSize, err = queryInt(r, "subgroupSize", services.DefaultSubgroupSize); err != nil {
		writeError(w, err)
		return
	}
	if q.USL, q.LSL, err = specLimits(r); err != nil {
		writeError(w, err)
		return
	}

	report, err := h.spc.XBarR(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// PChart godoc
// @Summary Daily fraction of non-compliant samples
// @Tags spc
// @Produce json
// @Success 200 {object} services.PChartReport
// @Router /api/spc/p-chart [get]
func (h *SPCHandler) PChart(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := h.spc.PChart(r.Context(), win)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// CChart godoc
// @Summary Non-compliant parameter counts per sample
// @Tags spc
// @Produce json
// @Success 200 {object} services.CChartReport
// @Router /api/spc/c-chart [get]
func (h *SPCHandler) CChart(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := h.spc.CChart(r.Context(), win)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ProcessCapability godoc
// @Summary Cp, Cpk, Pp and Ppk for one parameter
// @Tags spc
// @Produce json
// @Param parameter query string true "Parameter"
// @Param usl query number false "Upper specification limit"
// @Param lsl query number false "Lower specification limit"
// @Success 200 {object} services.CapabilityReport
// @Router /api/spc/process-capability [get]
func (h *SPCHandler) ProcessCapability(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := services.CapabilityQuery{Window: win, Parameter: r.URL.Query().Get("parameter")}
	if q.Parameter == "" {
		writeError(w, badRequest("parameter is required"))
		return
	}
	if q.USL, q.LSL, err = specLimits(r); err != nil {
		writeError(w, err)
		return
	}
	report, err := h.spc.Capability(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ControlCharts lists stored charts filtered by type, parameter and location.
func (h *SPCHandler) ControlCharts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	charts, err := h.spc.Charts(r.Context(), repository.ChartFilter{
		Type:      query.Get("type"),
		Parameter: query.Get("parameter"),
		Location:  query.Get("location"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charts)
}

func (h *SPCHandler) GetControlChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.spc.Chart(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// ExportControlChart downloads a stored chart as an Excel workbook.
func (h *SPCHandler) ExportControlChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.spc.Chart(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := createChartWorkbook(chart)
	if err != nil {
		writeError(w, fmt.Errorf("create workbook: %w", err))
		return
	}
	filename := fmt.Sprintf("%s_%s_%s.xlsx",
		sanitizeFilename(strings.ToLower(chart.Code)),
		sanitizeFilename(chart.Parameter),
		time.Now().Format("20060102_150405"))
	h.export.send(w, r, "exports/charts", filename, xlsxContentType, data)
}
