package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/hyperkh65/loadsim/internal/i18n"
	"github.com/hyperkh65/loadsim/internal/metrics"
	"github.com/hyperkh65/loadsim/internal/middleware"
	"github.com/hyperkh65/loadsim/internal/service"
)

const loggingServiceKey = "logging_service"

// exportPath serves binary attachments and is excluded from gzip.
const exportPath = "/api/simulations/export"

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	APIKeys           map[string]bool
	EnableAuth        bool
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	LoggingService    service.LoggingService

	// RateLimiter limits all traffic per client IP. WriteLimiter limits
	// catalog writes per API key. Both are created from RateLimit and
	// RateWindow when nil.
	RateLimiter  *middleware.RateLimiter
	WriteLimiter *middleware.RateLimiter

	idempotency gin.HandlerFunc
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: 30 * time.Second,
		EnableAuth:     false,
	}
}

// NewRouter creates and configures the Gin router for the simulation service.
func NewRouter(simulations *SimulationHandler, containers *ContainersHandler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	if cfg.RateLimit > 0 {
		if cfg.RateLimiter == nil {
			cfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		}
		if cfg.WriteLimiter == nil {
			cfg.WriteLimiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		}
	}
	if cfg.EnableIdempotency {
		cfg.idempotency = middleware.Idempotency(middleware.DefaultIdempotencyConfig())
	}

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	var groups []RouteGroup
	if simulations != nil {
		groups = append(groups, NewSimulationRoutes(simulations))
	}
	if containers != nil {
		groups = append(groups, NewContainerRoutes(containers))
	}
	for _, g := range groups {
		g.RegisterRoutes(api, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "accept", "Cache-Control", "X-Requested-With", "X-API-Key", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-Simulation-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	// The logger and metrics sit outside Recovery so panics are counted and
	// logged with their 500.
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(cfg.LoggingService),
		metrics.PrometheusMiddleware(),
		middleware.Recovery(),
		middleware.Compression(exportPath),
		middleware.ErrorHandler(),
	)
	router.NoRoute(func(c *gin.Context) {
		NewResponseBuilder(c).Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
	})

	router.Use(func(c *gin.Context) {
		c.Set(loggingServiceKey, cfg.LoggingService)
		c.Next()
	})

	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.RateLimit())
	}

	if cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(middleware.TimeoutConfig{
			Timeout:        cfg.RequestTimeout,
			ExemptPrefixes: []string{"/metrics", "/swagger"},
		}))
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler == nil {
		healthHandler = NewHealthHandler()
	}
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
