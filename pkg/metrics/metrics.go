package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор Prometheus метрик сервиса
// Каждый экземпляр регистрирует метрики в собственном registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries  *prometheus.CounterVec
	dbDuration *prometheus.HistogramVec
	dbOpen     *prometheus.GaugeVec
	dbInUse    *prometheus.GaugeVec
	dbIdle     *prometheus.GaugeVec
	dbWait     *prometheus.GaugeVec

	bookingOutcomes     *prometheus.CounterVec
	signals             *prometheus.CounterVec
	invariantViolations *prometheus.CounterVec
}

// New создает и регистрирует метрики
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	constLabels := prometheus.Labels{"app": serviceName}

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"service", "method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"service", "operation", "status"}),
		dbDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		dbOpen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}, []string{"service"}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}, []string{"service"}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}, []string{"service"}),
		dbWait: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"service"}),
		bookingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_outcomes_total",
			Help:        "Booking engine outcomes by operation, outcome and rejection reason",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome", "reason"}),
		signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_signals_total",
			Help:        "Outgoing refund/promotion signals by kind and result",
			ConstLabels: constLabels,
		}, []string{"kind", "result"}),
		invariantViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_invariant_violations_total",
			Help:        "Internal invariant violations detected by the booking engine",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}

	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.dbQueries, m.dbDuration, m.dbOpen, m.dbInUse, m.dbIdle, m.dbWait,
		m.bookingOutcomes, m.signals, m.invariantViolations,
	)

	return m
}

// Handler возвращает HTTP handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry нужен тестам для чтения значений
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(service, method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(service, method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(service, method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует запрос к БД
func (m *Metrics) ObserveDBQuery(service, operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil && err != sql.ErrNoRows {
		status = "error"
	}
	m.dbQueries.WithLabelValues(service, operation, status).Inc()
	m.dbDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики connection pool
func (m *Metrics) SetDBPoolStats(service string, stats sql.DBStats) {
	m.dbOpen.WithLabelValues(service).Set(float64(stats.OpenConnections))
	m.dbInUse.WithLabelValues(service).Set(float64(stats.InUse))
	m.dbIdle.WithLabelValues(service).Set(float64(stats.Idle))
	m.dbWait.WithLabelValues(service).Set(float64(stats.WaitCount))
}

// IncBookingOutcome считает исход операции движка бронирований
// reason пустой для успешных исходов
func (m *Metrics) IncBookingOutcome(operation, outcome, reason string) {
	m.bookingOutcomes.WithLabelValues(operation, outcome, reason).Inc()
}

// IncSignal считает исходящие сигналы (refund/promotion)
func (m *Metrics) IncSignal(kind, result string) {
	m.signals.WithLabelValues(kind, result).Inc()
}

// IncInvariantViolation считает нарушения внутренних инвариантов
func (m *Metrics) IncInvariantViolation(operation string) {
	m.invariantViolations.WithLabelValues(operation).Inc()
}
