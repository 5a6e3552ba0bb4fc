// Package metrics prometheus-коллекторы сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов для HTTP и БД
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DBQueryDuration     *prometheus.HistogramVec
	DBConnectionsOpen   *prometheus.GaugeVec
	DBConnectionsIdle   *prometheus.GaugeVec
	DBConnectionsInUse  *prometheus.GaugeVec
}

// New создает и регистрирует коллекторы в default-регистре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBConnectionsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// SetDBPoolStats обновляет gauge-метрики connection pool
func (m *Metrics) SetDBPoolStats(open, idle, inUse int) {
	m.DBConnectionsOpen.WithLabelValues().Set(float64(open))
	m.DBConnectionsIdle.WithLabelValues().Set(float64(idle))
	m.DBConnectionsInUse.WithLabelValues().Set(float64(inUse))
}
