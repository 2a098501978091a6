package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the
// scheduling pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	generationRuns  prometheus.Counter
	cellsScheduled  prometheus.Counter
	cellConflicts   prometheus.Counter
	substitutions   prometheus.Counter
	seatingPlans    prometheus.Counter
	exports         *prometheus.CounterVec
}

// NewMetricsService registers the core collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_generation_runs_total",
		Help: "Total timetable generation runs",
	})

	cellsScheduled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_cells_scheduled_total",
		Help: "Total grid cells filled across generation runs",
	})

	cellConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_cell_conflicts_total",
		Help: "Total grid cells left empty for lack of teachers",
	})

	substitutions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "substitutions_applied_total",
		Help: "Total substitution rewrites applied",
	})

	seatingPlans := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seating_plans_generated_total",
		Help: "Total exam seating plans generated",
	})

	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exports_rendered_total",
		Help: "Total export documents rendered",
	}, []string{"format"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generationRuns, cellsScheduled, cellConflicts, substitutions, seatingPlans, exports, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		generationRuns:  generationRuns,
		cellsScheduled:  cellsScheduled,
		cellConflicts:   cellConflicts,
		substitutions:   substitutions,
		seatingPlans:    seatingPlans,
		exports:         exports,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveGeneration records the outcome of one generation run.
func (m *MetricsService) ObserveGeneration(scheduled, conflicts int) {
	if m == nil {
		return
	}
	m.generationRuns.Inc()
	m.cellsScheduled.Add(float64(scheduled))
	m.cellConflicts.Add(float64(conflicts))
}

// ObserveSubstitution records one applied substitution.
func (m *MetricsService) ObserveSubstitution() {
	if m == nil {
		return
	}
	m.substitutions.Inc()
}

// ObserveSeatingPlan records one generated seating plan.
func (m *MetricsService) ObserveSeatingPlan() {
	if m == nil {
		return
	}
	m.seatingPlans.Inc()
}

// ObserveExport records one rendered export document.
func (m *MetricsService) ObserveExport(format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format).Inc()
}
