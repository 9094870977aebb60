// Package metrics exposes the service's Prometheus collectors. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	samplesIngested   *prometheus.CounterVec
	chartEvaluations  *prometheus.CounterVec
	predictions       *prometheus.CounterVec
	alertsPublished   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aquasure_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aquasure_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		samplesIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aquasure_samples_ingested_total",
			Help: "Samples stored, by source and quality status.",
		}, []string{"source", "status"}),
		chartEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aquasure_control_chart_evaluations_total",
			Help: "Control chart computations by chart type and resulting status.",
		}, []string{"type", "status"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aquasure_predictions_total",
			Help: "Predictions generated by risk level.",
		}, []string{"risk_level"}),
		alertsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aquasure_alerts_published_total",
			Help: "Risk alerts handed to the broker, by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.samplesIngested,
		m.chartEvaluations,
		m.predictions,
		m.alertsPublished,
	)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler records count and latency of requests served by next.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) SampleIngested(source, status string) {
	if m == nil {
		return
	}
	m.samplesIngested.WithLabelValues(source, status).Inc()
}

func (m *Metrics) ChartEvaluated(chartType, status string) {
	if m == nil {
		return
	}
	m.chartEvaluations.WithLabelValues(chartType, status).Inc()
}

func (m *Metrics) PredictionGenerated(level string) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(level).Inc()
}

func (m *Metrics) AlertPublished(ok bool) {
	if m == nil {
		return
	}
	outcome := "sent"
	if !ok {
		outcome = "failed"
	}
	m.alertsPublished.WithLabelValues(outcome).Inc()
}
