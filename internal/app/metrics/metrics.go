package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pop-search/internal/app/model"
	"pop-search/internal/app/pipeline"
)

const namespace = "popsearch"

// Metrics owns the service's collectors and the registry they live on.
type Metrics struct {
	registry *prometheus.Registry

	analyses         *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	polls            *prometheus.CounterVec
	rateLimited      *prometheus.CounterVec
	searches         *prometheus.CounterVec
	searchResults    prometheus.Histogram
	indexed          *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Finished video analyses by outcome.",
		}, []string{"outcome"}),
		analysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of video analyses by outcome.",
			Buckets:   []float64{1, 5, 10, 20, 30, 60, 120, 300},
		}, []string{"outcome"}),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "asset_polls_total",
			Help:      "Remote asset state polls by observed state.",
		}, []string{"state"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter by route.",
		}, []string{"route"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Semantic searches by status.",
		}, []string{"status"}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of rows returned per successful search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		indexed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "videos_indexed_total",
			Help:      "Video index attempts by status.",
		}, []string{"status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.analyses,
		m.analysisDuration,
		m.polls,
		m.rateLimited,
		m.searches,
		m.searchResults,
		m.indexed,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordAnalysis implements pipeline.Recorder
func (m *Metrics) RecordAnalysis(outcome pipeline.Outcome, elapsed time.Duration) {
	m.analyses.WithLabelValues(string(outcome)).Inc()
	m.analysisDuration.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
}

// OnPoll implements asset.Observer
func (m *Metrics) OnPoll(_ int, _ time.Duration, state model.ProcessingState) {
	m.polls.WithLabelValues(string(state)).Inc()
}

func (m *Metrics) RecordRateLimited(route string) {
	m.rateLimited.WithLabelValues(route).Inc()
}

func (m *Metrics) RecordSearch(err error, results int) {
	if err != nil {
		m.searches.WithLabelValues("error").Inc()
		return
	}
	m.searches.WithLabelValues("ok").Inc()
	m.searchResults.Observe(float64(results))
}

func (m *Metrics) RecordIndex(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.indexed.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
