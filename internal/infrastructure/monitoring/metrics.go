package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "packstudio"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Store metrics
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	Projects          prometheus.Gauge

	// Archive metrics
	Rewrites        *prometheus.CounterVec
	RewriteBytes    *prometheus.HistogramVec
	RewriteDuration *prometheus.HistogramVec

	// Catalog metrics
	CatalogReloads *prometheus.CounterVec

	startTime time.Time

	// Snapshot for the health endpoint
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current values for the JSON health endpoint
type Snapshot struct {
	TotalRequests int64   `json:"totalRequests"`
	TotalErrors   int64   `json:"totalErrors"`
	Projects      int64   `json:"projects"`
	Rewrites      int64   `json:"rewrites"`
	AvgLatencyMS  float64 `json:"avgLatencyMs"`
	UptimeSeconds float64 `json:"uptimeSeconds"`

	totalDuration float64
}

// NewMetrics creates the collectors and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{startTime: time.Now()}

	m.RequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	m.RequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)
	m.RequestSize = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_size_bytes",
			Help:      "HTTP request size in bytes",
			Buckets:   []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		},
		[]string{"method", "path"},
	)
	m.ResponseSize = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		},
		[]string{"method", "path"},
	)

	m.Operations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Project store operations by outcome",
		},
		[]string{"op", "status"},
	)
	m.OperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Project store operation duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"op"},
	)
	m.Projects = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "projects",
			Help:      "Number of readable projects at the last listing",
		},
	)

	m.Rewrites = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_rewrites_total",
			Help:      "Archive writes by operation and outcome",
		},
		[]string{"op", "status"},
	)
	m.RewriteBytes = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "archive_rewrite_bytes",
			Help:      "Size of archives written",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		},
		[]string{"op"},
	)
	m.RewriteDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "archive_rewrite_duration_seconds",
			Help:      "Archive write duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"op"},
	)

	m.CatalogReloads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog reloads by outcome",
		},
		[]string{"status"},
	)

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordOperation records a project store operation
func (m *Metrics) RecordOperation(op, status string, duration time.Duration) {
	m.Operations.WithLabelValues(op, status).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// SetProjects sets the project count
func (m *Metrics) SetProjects(count int) {
	m.Projects.Set(float64(count))
	m.mu.Lock()
	m.snapshot.Projects = int64(count)
	m.mu.Unlock()
}

// RecordRewrite records one archive write
func (m *Metrics) RecordRewrite(op string, bytes int64, duration time.Duration, err error) {
	m.Rewrites.WithLabelValues(op, statusOf(err)).Inc()
	if err == nil {
		m.RewriteBytes.WithLabelValues(op).Observe(float64(bytes))
	}
	m.RewriteDuration.WithLabelValues(op).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.Rewrites++
	m.mu.Unlock()
}

// RecordCatalogReload records a catalog reload
func (m *Metrics) RecordCatalogReload(err error) {
	m.CatalogReloads.WithLabelValues(statusOf(err)).Inc()
}

// Snapshot returns the current summary values
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AvgLatencyMS = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
