package handlers

import (
	"net/http"
	"strings"

	"p9e.in/aquasure/pkg/forecast"
	"p9e.in/aquasure/repository"
	"p9e.in/aquasure/services"
)

// PredictionHandler serves /api/predictions.
type PredictionHandler struct {
	predictions *services.PredictionService
}

func NewPredictionHandler(predictions *services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictions: predictions}
}

// GeneratePrediction godoc
// @Summary Forecast quality and risk for a location
// @Tags predictions
// @Produce json
// @Param location query string true "Location"
// @Param daysAhead query int false "Horizon in days (default 7)"
// @Success 201 {object} models.Prediction
// @Failure 422 {object} map[string]string
// @Router /api/predictions/generate [get]
func (h *PredictionHandler) GeneratePrediction(w http.ResponseWriter, r *http.Request) {
	daysAhead, err := queryInt(r, "daysAhead", forecast.DefaultDaysAhead)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.predictions.Generate(r.Context(), r.URL.Query().Get("location"), daysAhead)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListPredictions filters by location, status and riskLevel.
func (h *PredictionHandler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	f := repository.PredictionFilter{
		Location: strings.TrimSpace(query.Get("location")),
		Status:   query.Get("status"),
		Limit:    limit,
	}
	if level := query.Get("riskLevel"); level != "" {
		switch rl := forecast.RiskLevel(level); rl {
		case forecast.RiskLow, forecast.RiskMedium, forecast.RiskHigh, forecast.RiskCritical:
			f.RiskLevel = rl
		default:
			writeError(w, badRequest("unknown riskLevel %q", level))
			return
		}
	}
	predictions, err := h.predictions.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, predictions)
}

// Alerts godoc
// @Summary Active High and Critical predictions
// @Tags predictions
// @Produce json
// @Success 200 {array} models.Prediction
// @Router /api/predictions/alerts [get]
func (h *PredictionHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.predictions.ActiveAlerts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (h *PredictionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.predictions.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// RecordOutcome resolves a prediction with what actually happened.
func (h *PredictionHandler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in services.OutcomeInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.predictions.RecordOutcome(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
