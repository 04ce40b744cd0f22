// Package metrics provides Prometheus collectors for the loading simulator.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// SimulationsTotal counts simulation runs by outcome.
	SimulationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadsim_simulations_total",
			Help: "Total number of loading simulations",
		},
		[]string{"status", "rotation_mode"},
	)

	// SimulationDuration tracks how long the packing engine runs.
	SimulationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loadsim_simulation_duration_seconds",
			Help:    "Loading simulation duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
	)

	// CartonsPlacedTotal counts cartons placed in containers.
	CartonsPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loadsim_cartons_placed_total",
			Help: "Total number of cartons placed",
		},
	)

	// CartonsOverflowTotal counts cartons that could not be loaded, by reason.
	CartonsOverflowTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadsim_cartons_overflow_total",
			Help: "Total number of cartons left over",
		},
		[]string{"reason"},
	)

	// ContainerUtilization observes the volume utilization percentage of each run.
	ContainerUtilization = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loadsim_container_utilization_percent",
			Help:    "Container volume utilization per simulation",
			Buckets: []float64{5, 10, 25, 50, 60, 70, 80, 90, 95, 100},
		},
		[]string{"container"},
	)

	// ExportsTotal counts rendered documents by format.
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadsim_exports_total",
			Help: "Total number of exported simulation documents",
		},
		[]string{"format", "status"},
	)

	// LogEntriesTotal tracks request and audit log writes by outcome.
	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loadsim_log_entries_total",
			Help: "Total number of log entries handed to the log writer",
		},
		[]string{"result"},
	)

	// CircuitBreakerState reports 0 closed, 1 open and 2 half-open per breaker.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state",
		},
		[]string{"name"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordSimulation records the outcome of one simulation run.
func RecordSimulation(duration time.Duration, status, mode string) {
	SimulationDuration.Observe(duration.Seconds())
	SimulationsTotal.WithLabelValues(status, mode).Inc()
}

// RecordPlacement records placed and overflowing cartons and the utilization
// of a successful run.
func RecordPlacement(container string, placed int, overflow map[string]int, utilization float64) {
	CartonsPlacedTotal.Add(float64(placed))
	for reason, n := range overflow {
		if n > 0 {
			CartonsOverflowTotal.WithLabelValues(reason).Add(float64(n))
		}
	}
	ContainerUtilization.WithLabelValues(container).Observe(utilization)
}

// RecordExport records a document export.
func RecordExport(format, status string) {
	ExportsTotal.WithLabelValues(format, status).Inc()
}

// RecordLogEntry records the outcome of a log write: written, dropped or failed.
func RecordLogEntry(result string) {
	LogEntriesTotal.WithLabelValues(result).Inc()
}

// SetCircuitBreakerState publishes the state of the named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}
