package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"p9e.in/aquasure/metrics"
)

func TestRegisterRoutes(t *testing.T) {
	router := RegisterRoutes(Handlers{}, Options{
		CORSOrigin: "*",
		APIKeys:    []string{"secret"},
		Metrics:    metrics.NewMetrics(),
	})

	tests := []struct {
		name     string
		method   string
		path     string
		want     int
		contains string
	}{
		{"health", http.MethodGet, "/api/health", http.StatusOK, "AquaSure API is running"},
		{"swagger", http.MethodGet, "/swagger/doc.json", http.StatusOK, "AquaSure API"},
		{"write needs key", http.MethodPost, "/api/samples", http.StatusUnauthorized, "API key"},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound, ""},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, "aquasure_http_requests_total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}
}
