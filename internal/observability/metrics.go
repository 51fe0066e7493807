// Package observability provides Prometheus metrics for weatherdash.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WeatherMetrics contains Prometheus metrics for weather fetch and
// dashboard operations. A nil *WeatherMetrics is valid: all record methods
// are no-ops, so metrics stay optional for callers.
type WeatherMetrics struct {
	registry *prometheus.Registry

	fetchesTotal     *prometheus.CounterVec
	fetchErrorsTotal *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec

	submitsTotal  *prometheus.CounterVec
	dashboardState prometheus.Gauge
}

// NewWeatherMetrics creates and registers weather metrics on the given
// registry.
func NewWeatherMetrics(registry *prometheus.Registry) (*WeatherMetrics, error) {
	m := &WeatherMetrics{registry: registry}

	m.fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherdash_fetches_total",
			Help: "Total number of weather fetch operations",
		},
		[]string{"endpoint", "status"}, // status: success, error
	)

	m.fetchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherdash_fetch_errors_total",
			Help: "Total number of weather fetch errors",
		},
		[]string{"endpoint", "category"},
	)

	m.fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "weatherdash_fetch_duration_seconds",
			Help: "Time taken to fetch weather data",
			// 100ms to ~50s covers fast responses through timeouts
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"endpoint"},
	)

	m.submitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherdash_submits_total",
			Help: "Total number of dashboard query submissions",
		},
		[]string{"result"}, // loaded, failed, superseded, validation
	)

	m.dashboardState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "weatherdash_dashboard_state",
			Help: "Current dashboard fetch state (0=idle 1=loading 2=loaded 3=failed)",
		},
	)

	collectors := []prometheus.Collector{
		m.fetchesTotal,
		m.fetchErrorsTotal,
		m.fetchDuration,
		m.submitsTotal,
		m.dashboardState,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordFetch records the outcome of one provider fetch.
func (m *WeatherMetrics) RecordFetch(endpoint, status string) {
	if m == nil {
		return
	}
	m.fetchesTotal.WithLabelValues(endpoint, status).Inc()
}

// RecordFetchError records an error category for one provider fetch.
func (m *WeatherMetrics) RecordFetchError(endpoint, category string) {
	if m == nil {
		return
	}
	m.fetchErrorsTotal.WithLabelValues(endpoint, category).Inc()
}

// RecordFetchDuration records the duration of one provider fetch in seconds.
func (m *WeatherMetrics) RecordFetchDuration(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(endpoint).Observe(seconds)
}

// RecordSubmit records the outcome of one dashboard submission.
func (m *WeatherMetrics) RecordSubmit(result string) {
	if m == nil {
		return
	}
	m.submitsTotal.WithLabelValues(result).Inc()
}

// SetDashboardState records the dashboard's current fetch state.
func (m *WeatherMetrics) SetDashboardState(state float64) {
	if m == nil {
		return
	}
	m.dashboardState.Set(state)
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (m *WeatherMetrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
