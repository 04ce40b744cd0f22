package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/hyperkh65/loadsim/internal/circuitbreaker"
)

// HealthChecker defines the interface for health check operations.
type HealthChecker interface {
	Check() error
}

// HealthCheckerFunc adapts a function to HealthChecker.
type HealthCheckerFunc func() error

// Check calls f.
func (f HealthCheckerFunc) Check() error { return f() }

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
	stats           map[string]func() interface{}
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
		stats:           make(map[string]func() interface{}),
	}
}

// RegisterChecker adds a dependency whose failure makes the service not ready.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	if checker != nil {
		h.checkers[name] = checker
	}
}

// RegisterCircuitBreaker registers a circuit breaker for health monitoring.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb != nil {
		h.circuitBreakers[name] = cb
	}
}

// RegisterStats adds a snapshot reported under "stats" by the readiness probe.
func (h *HealthHandler) RegisterStats(name string, fn func() interface{}) {
	if fn != nil {
		h.stats[name] = fn
	}
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK if the service is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
//
// A failing checker makes the service unavailable. An open circuit breaker
// only degrades it: the catalog keeps serving presets and simulations still run.
//
// @Summary     Readiness probe
// @Description Reports dependency checks, circuit breaker states and worker statistics. Returns 503 when a dependency check fails; an open circuit breaker is reported as degraded.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	code := http.StatusOK
	status := "ok"
	checks := make(map[string]interface{})

	for name, checker := range h.checkers {
		if err := checker.Check(); err != nil {
			checks[name] = err.Error()
			code = http.StatusServiceUnavailable
			status = "unavailable"
		} else {
			checks[name] = "ok"
		}
	}

	names := make([]string, 0, len(h.circuitBreakers))
	for name := range h.circuitBreakers {
		names = append(names, name)
	}
	sort.Strings(names)

	breakers := make([]circuitbreaker.Stats, 0, len(names))
	for _, name := range names {
		stats := h.circuitBreakers[name].GetStats()
		checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy && code == http.StatusOK {
			status = "degraded"
		}
		breakers = append(breakers, stats)
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	body := gin.H{
		"status": status,
		"checks": checks,
	}
	if len(breakers) > 0 {
		body["circuit_breakers"] = breakers
	}
	if len(h.stats) > 0 {
		snapshot := make(map[string]interface{}, len(h.stats))
		for name, fn := range h.stats {
			snapshot[name] = fn()
		}
		body["stats"] = snapshot
	}

	c.JSON(code, body)
}
