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
// genetic search runs.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	runTotal        *prometheus.CounterVec
	runDuration     prometheus.Observer
	runGenerations  prometheus.Observer
	bestFitness     prometheus.Gauge
	storeHits       prometheus.Counter
	storeMisses     prometheus.Counter
}

// NewMetricsService registers the collectors on a private registry.
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

	runTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_runs_total",
		Help: "Completed scheduling runs by outcome",
	}, []string{"outcome"})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_run_duration_seconds",
		Help:    "Wall-clock duration of scheduling runs",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	runGenerations := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_run_generations",
		Help:    "Generations consumed per scheduling run",
		Buckets: []float64{10, 25, 50, 100, 150, 200, 250, 300},
	})

	bestFitness := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scheduler_best_fitness",
		Help: "Fitness of the most recently generated timetable",
	})

	storeHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "result_store_hits_total",
		Help: "Timetable result lookups that found a stored result",
	})

	storeMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "result_store_misses_total",
		Help: "Timetable result lookups that found nothing",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, runTotal, runDuration, runGenerations, bestFitness, storeHits, storeMisses, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		runTotal:        runTotal,
		runDuration:     runDuration,
		runGenerations:  runGenerations,
		bestFitness:     bestFitness,
		storeHits:       storeHits,
		storeMisses:     storeMisses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records per-request latency and volume.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveSchedulerRun records the outcome and cost of one finished search.
func (m *MetricsService) ObserveSchedulerRun(outcome string, generations int, fitness float64, duration time.Duration) {
	if m == nil {
		return
	}
	m.runTotal.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(duration.Seconds())
	m.runGenerations.Observe(float64(generations))
	m.bestFitness.Set(fitness)
}

// RecordStoreLookup tracks result store hit/miss volume.
func (m *MetricsService) RecordStoreLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.storeHits.Inc()
	} else {
		m.storeMisses.Inc()
	}
}
