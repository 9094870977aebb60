package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	_ "p9e.in/aquasure/docs"
	"p9e.in/aquasure/handlers"
	"p9e.in/aquasure/metrics"
	"p9e.in/aquasure/middleware"
)

// Handlers groups the API handlers the router mounts.
type Handlers struct {
	Samples     *handlers.SampleHandler
	Locations   *handlers.LocationHandler
	SPC         *handlers.SPCHandler
	QC          *handlers.QCHandler
	Predictions *handlers.PredictionHandler
}

// Options are the cross-cutting settings of the HTTP stack.
type Options struct {
	CORSOrigin string
	APIKeys    []string
	Metrics    *metrics.Metrics
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(h Handlers, opts Options) http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Operational endpoints
	// =====================================================
	r.HandleFunc("/api/health", handlers.Health).Methods("GET")
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler()).Methods("GET")
	}
	r.HandleFunc("/swagger/doc.json", serveSwagger).Methods("GET")

	// =====================================================
	// API Routes
	// =====================================================
	api := r.PathPrefix("/api").Subrouter()
	api.Use(instrument(opts.Metrics))
	api.Use(middleware.SecurityHeaders)
	api.Use(middleware.APIKeyGuard(opts.APIKeys))

	registerSampleRoutes(api, h)
	registerSPCRoutes(api, h.SPC)
	registerQCRoutes(api, h.QC)
	registerPredictionRoutes(api, h.Predictions)

	var handler http.Handler = r
	handler = middleware.CORS(opts.CORSOrigin)(handler)
	handler = middleware.AccessLog(handler)
	return middleware.Recover(handler)
}

func registerSampleRoutes(api *mux.Router, h Handlers) {
	api.HandleFunc("/samples", h.Samples.CreateSample).Methods("POST")
	api.HandleFunc("/samples", h.Samples.ListSamples).Methods("GET")
	api.HandleFunc("/samples/stats", h.Samples.SampleStatistics).Methods("GET")
	api.HandleFunc("/samples/export", h.Samples.ExportSamples).Methods("GET")
	api.HandleFunc("/samples/{id}", h.Samples.GetSample).Methods("GET")
	api.HandleFunc("/samples/{id}", h.Samples.UpdateSample).Methods("PUT")
	api.HandleFunc("/samples/{id}", h.Samples.DeleteSample).Methods("DELETE")
	api.HandleFunc("/samples/{id}/verify", h.Samples.VerifySample).Methods("PATCH")
	api.HandleFunc("/samples/{id}/corrective-actions", h.Samples.AddCorrectiveAction).Methods("POST")

	api.HandleFunc("/locations", h.Locations.ListLocations).Methods("GET")
	api.HandleFunc("/locations/map", h.Locations.LocationMap).Methods("GET")
	api.HandleFunc("/locations/{name}", h.Locations.UpdateLocation).Methods("PUT")
}

func registerSPCRoutes(api *mux.Router, h *handlers.SPCHandler) {
	spc := api.PathPrefix("/spc").Subrouter()
	spc.HandleFunc("/xbar-r-chart", h.XBarRChart).Methods("GET")
	spc.HandleFunc("/p-chart", h.PChart).Methods("GET")
	spc.HandleFunc("/c-chart", h.CChart).Methods("GET")
	spc.HandleFunc("/process-capability", h.ProcessCapability).Methods("GET")
	spc.HandleFunc("/control-charts", h.ControlCharts).Methods("GET")
	spc.HandleFunc("/control-charts/{id}", h.GetControlChart).Methods("GET")
	spc.HandleFunc("/control-charts/{id}/export", h.ExportControlChart).Methods("GET")
}

func registerQCRoutes(api *mux.Router, h *handlers.QCHandler) {
	qc := api.PathPrefix("/qc-tools").Subrouter()
	qc.HandleFunc("/pareto", h.Pareto).Methods("GET")
	qc.HandleFunc("/histogram", h.Histogram).Methods("GET")
	qc.HandleFunc("/scatter", h.Scatter).Methods("GET")
	qc.HandleFunc("/checksheet", h.CheckSheet).Methods("GET")
	qc.HandleFunc("/process-flow", h.ProcessFlow).Methods("GET")
	qc.HandleFunc("/fishbone", h.Fishbone).Methods("GET")
	qc.HandleFunc("/cause-effect", h.Fishbone).Methods("GET")
	qc.HandleFunc("/fishbone", h.CreateFishbone).Methods("POST")
	qc.HandleFunc("/seed/noncompliant", h.SeedNonCompliant).Methods("POST")
}

func registerPredictionRoutes(api *mux.Router, h *handlers.PredictionHandler) {
	p := api.PathPrefix("/predictions").Subrouter()
	p.HandleFunc("/generate", h.GeneratePrediction).Methods("GET")
	p.HandleFunc("", h.ListPredictions).Methods("GET")
	p.HandleFunc("/alerts", h.Alerts).Methods("GET")
	p.HandleFunc("/stats", h.Stats).Methods("GET")
	p.HandleFunc("/{id}/outcome", h.RecordOutcome).Methods("PATCH")
}

// instrument labels request metrics with the matched route template.
func instrument(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			m.WrapHandler(route, next).ServeHTTP(w, r)
		})
	}
}

func serveSwagger(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
