package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/forecast"
	"p9e.in/aquasure/pkg/qc"
	"p9e.in/aquasure/pkg/quality"
	"p9e.in/aquasure/pkg/spc"
	"p9e.in/aquasure/services"
)

// errBadRequest marks malformed query or body input.
var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, spc.ErrInsufficientData),
		errors.Is(err, qc.ErrInsufficientData),
		errors.Is(err, forecast.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest),
		services.IsValidation(err),
		errors.Is(err, quality.ErrUnknownParameter),
		errors.Is(err, spc.ErrInvalidSubgroupSize),
		errors.Is(err, qc.ErrInvalidBins),
		errors.Is(err, qc.ErrLengthMismatch):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyResolved):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

// decodeOptionalJSON accepts an empty body and leaves v untouched.
func decodeOptionalJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, badRequest("invalid id %q", mux.Vars(r)["id"])
	}
	return id, nil
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, badRequest("%s must be a number", key)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, badRequest("%s must be a finite number", key)
	}
	return &f, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest("%s must be an integer", key)
	}
	return n, nil
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil, nil
	}
	t, err := models.ParseTime(v)
	if err != nil {
		return nil, badRequest("%s: %v", key, err)
	}
	return &t, nil
}

// parseWindow reads location, startDate and endDate.
func parseWindow(r *http.Request) (services.Window, error) {
	w := services.Window{Location: strings.TrimSpace(r.URL.Query().Get("location"))}
	var err error
	if w.From, err = queryTime(r, "startDate"); err != nil {
		return w, err
	}
	if w.To, err = queryTime(r, "endDate"); err != nil {
		return w, err
	}
	return w, nil
}
