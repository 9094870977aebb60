package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/forecast"
	"p9e.in/aquasure/pkg/quality"
	"p9e.in/aquasure/pkg/spc"
	"p9e.in/aquasure/services"
	"p9e.in/aquasure/utils"
)

var safeReading = [4]float64{7.2, 250, 1, 0.5}

func do(h http.HandlerFunc, method, target string, body interface{}, vars map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	rec := do(Health, http.MethodGet, "/api/health", nil, nil)
	var body map[string]string
	decode(t, rec, &body)
	if rec.Code != http.StatusOK || body["status"] != "OK" {
		t.Errorf("got %d %v", rec.Code, body)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{spc.ErrInsufficientData, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrap: %w", forecast.ErrInsufficientData), http.StatusUnprocessableEntity},
		{badRequest("x"), http.StatusBadRequest},
		{fmt.Errorf("%w: bad", services.ErrValidation), http.StatusBadRequest},
		{quality.ErrUnknownParameter, http.StatusBadRequest},
		{services.ErrNotFound, http.StatusNotFound},
		{models.ErrAlreadyResolved, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestSampleLifecycle(t *testing.T) {
	env := newTestEnv()
	h := env.sampleHandler

	rec := do(h.CreateSample, http.MethodPost, "/api/samples", map[string]interface{}{
		"location": "Jaipur", "ph": 7.2, "tds": 250, "turbidity": 1, "chlorine": 0.5,
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Sample
	decode(t, rec, &created)
	if created.Status != quality.StatusSafe || !created.IsCompliant {
		t.Errorf("created = %+v", created)
	}
	if len(env.locations.rows) != 1 || env.locations.rows[0].Name != "Jaipur" {
		t.Errorf("location not recorded: %+v", env.locations.rows)
	}

	vars := map[string]string{"id": created.ID.String()}
	rec = do(h.VerifySample, http.MethodPatch, "/", map[string]interface{}{"verified": true, "verifiedBy": "Quality Auditor"}, vars)
	var verified models.Sample
	decode(t, rec, &verified)
	if rec.Code != http.StatusOK || !verified.Verified || verified.VerifiedBy == nil {
		t.Errorf("verify = %d %+v", rec.Code, verified)
	}

	rec = do(h.AddCorrectiveAction, http.MethodPost, "/", map[string]string{"action": "Flush line"}, vars)
	var withAction models.Sample
	decode(t, rec, &withAction)
	if rec.Code != http.StatusCreated || len(withAction.CorrectiveActions) != 1 {
		t.Errorf("corrective action = %d %+v", rec.Code, withAction.CorrectiveActions)
	}

	rec = do(h.DeleteSample, http.MethodDelete, "/", nil, vars)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
	rec = do(h.GetSample, http.MethodGet, "/", nil, vars)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", rec.Code)
	}
}

func TestCreateSampleValidation(t *testing.T) {
	env := newTestEnv()
	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing readings", `{"location":"Jaipur","ph":7}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
		{"ph out of range", `{"location":"Jaipur","ph":15,"tds":1,"turbidity":1,"chlorine":0.5}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/samples", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			env.sampleHandler.CreateSample(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestListSamplesRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv()
	rec := do(env.sampleHandler.ListSamples, http.MethodGet, "/api/samples?status=Murky", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	rec = do(env.sampleHandler.GetSample, http.MethodGet, "/", nil, map[string]string{"id": "not-a-uuid"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid id status = %d", rec.Code)
	}
}

func TestExportSamplesCSV(t *testing.T) {
	env := newTestEnv()
	env.seed("Jaipur", 3, safeReading)

	rec := do(env.sampleHandler.ExportSamples, http.MethodGet, "/api/samples/export?format=csv&location=Jaipur", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "Jaipur_samples_") {
		t.Errorf("disposition = %q", rec.Header().Get("Content-Disposition"))
	}
	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 || records[0][0] != "Timestamp" || records[1][1] != "Jaipur" {
		t.Errorf("records = %v", records)
	}

	rec = do(env.sampleHandler.ExportSamples, http.MethodGet, "/api/samples/export?format=pdf", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("pdf status = %d", rec.Code)
	}
}

func TestXBarRChartAndExport(t *testing.T) {
	env := newTestEnv()

	rec := do(env.spcHandler.XBarRChart, http.MethodGet, "/api/spc/xbar-r-chart?parameter=ph", nil, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty status = %d", rec.Code)
	}
	rec = do(env.spcHandler.XBarRChart, http.MethodGet, "/api/spc/xbar-r-chart", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing parameter status = %d", rec.Code)
	}

	env.seed("Jaipur", 10, safeReading)
	rec = do(env.spcHandler.XBarRChart, http.MethodGet, "/api/spc/xbar-r-chart?parameter=ph&subgroupSize=5", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var report struct {
		ChartID  string `json:"chartId"`
		Status   string `json:"status"`
		Location string `json:"location"`
	}
	decode(t, rec, &report)
	if report.ChartID == "" || report.Status != spc.StatusInControl || report.Location != "All" {
		t.Errorf("report = %+v", report)
	}

	rec = do(env.spcHandler.ExportControlChart, http.MethodGet, "/?archive=true", nil, map[string]string{"id": report.ChartID})
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("export = %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.HasPrefix(rec.Header().Get("X-Archive-URI"), "gs://test-bucket/exports/charts/") {
		t.Errorf("archive uri = %q", rec.Header().Get("X-Archive-URI"))
	}
	f, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	sheets := strings.Join(f.GetSheetList(), ",")
	if sheets != "Summary,Data,Violations" {
		t.Errorf("sheets = %s", sheets)
	}

	rec = do(env.spcHandler.ExportControlChart, http.MethodGet, "/", nil, map[string]string{"id": "CHART-MISSING"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing chart status = %d", rec.Code)
	}
}

func TestProcessCapabilityNeedsLimits(t *testing.T) {
	env := newTestEnv()
	env.seed("Jaipur", 5, safeReading)
	rec := do(env.spcHandler.ProcessCapability, http.MethodGet, "/api/spc/process-capability?parameter=ph", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	for _, q := range []string{"usl=abc", "usl=NaN", "usl=Inf", "lsl=-Inf", "usl=8.5&lsl=nan"} {
		rec = do(env.spcHandler.ProcessCapability, http.MethodGet, "/api/spc/process-capability?parameter=ph&"+q, nil, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d", q, rec.Code)
		}
	}
}

func TestProcessCapabilityConstantSeries(t *testing.T) {
	env := newTestEnv()
	env.seed("Jaipur", 8, safeReading)
	rec := do(env.spcHandler.ProcessCapability, http.MethodGet, "/api/spc/process-capability?parameter=ph&usl=8.5&lsl=6.5", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]interface{}
	decode(t, rec, &body)
	if body["computable"] != false || body["reason"] != services.ReasonNoSpread || body["interpretation"] != "" {
		t.Errorf("body = %v", body)
	}
	if _, ok := body["cp"]; ok {
		t.Errorf("cp reported for a constant series: %v", body["cp"])
	}
}

func TestHistogramBinsBounded(t *testing.T) {
	env := newTestEnv()
	env.seed("Jaipur", 4, safeReading)
	for _, bins := range []string{"-1", "1001", "100000000"} {
		rec := do(env.qcHandler.Histogram, http.MethodGet, "/api/qc-tools/histogram?parameter=tds&bins="+bins, nil, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("bins=%s status = %d", bins, rec.Code)
		}
	}
}

func TestParetoAllCompliant(t *testing.T) {
	env := newTestEnv()
	env.seed("Jaipur", 4, safeReading)
	rec := do(env.qcHandler.Pareto, http.MethodGet, "/api/qc-tools/pareto", nil, nil)
	var report services.ParetoReport
	decode(t, rec, &report)
	if rec.Code != http.StatusOK || len(report.Pareto) != 0 || report.Summary.Message == "" {
		t.Errorf("got %d %+v", rec.Code, report)
	}
}

func TestSeedNonCompliantAndFishbone(t *testing.T) {
	env := newTestEnv()
	rec := do(env.qcHandler.SeedNonCompliant, http.MethodPost, "/api/qc-tools/seed/noncompliant", map[string]interface{}{"count": 3, "location": "Kota"}, nil)
	var body struct {
		Message string          `json:"message"`
		Samples []models.Sample `json:"samples"`
	}
	decode(t, rec, &body)
	if rec.Code != http.StatusCreated || body.Message != "Seeded 3 non-compliant samples at Kota" || len(body.Samples) != 3 {
		t.Errorf("got %d %+v", rec.Code, body.Message)
	}

	rec = do(env.qcHandler.SeedNonCompliant, http.MethodPost, "/api/qc-tools/seed/noncompliant", map[string]int{"count": -1}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative count status = %d", rec.Code)
	}

	rec = do(env.qcHandler.SeedNonCompliant, http.MethodPost, "/api/qc-tools/seed/noncompliant", nil, nil)
	body.Samples = nil
	decode(t, rec, &body)
	if rec.Code != http.StatusCreated || len(body.Samples) != 8 || body.Samples[0].Location != "Jaipur" {
		t.Errorf("empty body got %d with %d samples", rec.Code, len(body.Samples))
	}

	rec = do(env.qcHandler.CreateFishbone, http.MethodPost, "/api/qc-tools/fishbone", map[string]string{"problem": "Taste complaints"}, nil)
	var diagram struct {
		Effect     string `json:"effect"`
		Categories []struct {
			Causes []string `json:"causes"`
		} `json:"categories"`
	}
	decode(t, rec, &diagram)
	if rec.Code != http.StatusCreated || diagram.Effect != "Taste complaints" || len(diagram.Categories) != 6 {
		t.Errorf("got %d %+v", rec.Code, diagram)
	}
	for _, c := range diagram.Categories {
		if len(c.Causes) != 0 {
			t.Errorf("blank diagram has causes %v", c.Causes)
		}
	}
}

func TestPredictionEndpoints(t *testing.T) {
	env := newTestEnv()
	h := env.predictionHandler

	rec := do(h.GeneratePrediction, http.MethodGet, "/api/predictions/generate?location=Jaipur", nil, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("no history status = %d", rec.Code)
	}
	rec = do(h.GeneratePrediction, http.MethodGet, "/api/predictions/generate", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("no location status = %d", rec.Code)
	}

	env.seed("Jaipur", 10, safeReading)
	rec = do(h.GeneratePrediction, http.MethodGet, "/api/predictions/generate?location=Jaipur&daysAhead=3", nil, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status = %d: %s", rec.Code, rec.Body.String())
	}
	var p models.Prediction
	decode(t, rec, &p)
	if p.DataSource != models.SourceLocation || p.RiskLevel != forecast.RiskLow {
		t.Errorf("prediction = %s %s", p.DataSource, p.RiskLevel)
	}

	vars := map[string]string{"id": p.ID.String()}
	outcome := map[string]interface{}{"actualQualityIndex": 90, "actionsTaken": []string{}}
	if rec = do(h.RecordOutcome, http.MethodPatch, "/", outcome, vars); rec.Code != http.StatusOK {
		t.Errorf("outcome status = %d: %s", rec.Code, rec.Body.String())
	}
	if rec = do(h.RecordOutcome, http.MethodPatch, "/", outcome, vars); rec.Code != http.StatusConflict {
		t.Errorf("second outcome status = %d", rec.Code)
	}

	if rec = do(h.ListPredictions, http.MethodGet, "/api/predictions?riskLevel=Extreme", nil, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad risk level status = %d", rec.Code)
	}
}

func TestLocationFeatures(t *testing.T) {
	lat, lon := 26.9124, 75.7873
	farLat, farLon := 28.6139, 77.2090
	locations := []models.Location{
		{Name: "Jaipur", Latitude: &lat, Longitude: &lon, SampleCount: 2, AverageQualityIndex: 92},
		{Name: "Delhi", Latitude: &farLat, Longitude: &farLon},
		{Name: "Nowhere"},
	}

	fc := locationFeatures(locations, nil, 0)
	if len(fc.Features) != 2 {
		t.Fatalf("features = %d", len(fc.Features))
	}
	f := fc.Features[0]
	if f.Properties["name"] != "Jaipur" || f.Properties["status"] != string(quality.StatusSafe) {
		t.Errorf("properties = %v", f.Properties)
	}
	if p := f.Point(); p.Lon() != lon || p.Lat() != lat {
		t.Errorf("point = %v", p)
	}
	if _, ok := fc.Features[1].Properties["status"]; ok {
		t.Error("location without samples should have no status")
	}

	near := locationFeatures(locations, &utils.Coordinate{Lat: lat, Lng: lon}, 50)
	if len(near.Features) != 1 || near.Features[0].Properties["name"] != "Jaipur" {
		t.Errorf("radius filter kept %d features", len(near.Features))
	}
}

func TestUpdateLocationAndMap(t *testing.T) {
	env := newTestEnv()
	env.seed("Jaipur", 1, safeReading)
	env.locations.RecordSample(context.Background(), "Jaipur", baseTime, 95)

	vars := map[string]string{"name": "Jaipur"}
	rec := do(env.locationHandler.UpdateLocation, http.MethodPut, "/", map[string]float64{"latitude": 26.9124}, vars)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("half coordinates status = %d", rec.Code)
	}
	rec = do(env.locationHandler.UpdateLocation, http.MethodPut, "/", map[string]float64{"latitude": 26.9124, "longitude": 75.7873}, vars)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(env.locationHandler.LocationMap, http.MethodGet, "/api/locations/map", nil, nil)
	var fc struct {
		Type     string        `json:"type"`
		Features []interface{} `json:"features"`
	}
	decode(t, rec, &fc)
	if rec.Code != http.StatusOK || fc.Type != "FeatureCollection" || len(fc.Features) != 1 {
		t.Errorf("map = %d %+v", rec.Code, fc)
	}

	rec = do(env.locationHandler.LocationMap, http.MethodGet, "/api/locations/map?lat=26.9", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("partial radius filter status = %d", rec.Code)
	}
}
