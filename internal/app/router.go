package app

import (
	"context"

	"github.com/hyperkh65/loadsim/config"
	"github.com/hyperkh65/loadsim/internal/http"
	"github.com/hyperkh65/loadsim/internal/middleware"
	"github.com/hyperkh65/loadsim/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Simulations   *http.SimulationHandler
	Containers    *http.ContainersHandler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the HTTP handlers, the health probes and the router
// configuration. When a logging service is available the async request
// logger is started; Close stops it.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
	}

	simulations := http.NewSimulationHandler(
		services.Simulator,
		services.Catalog,
		http.WithDefaultContainer(cfg.Packing.DefaultContainer),
		http.WithMaxUploadBytes(cfg.Server.MaxUploadBytes),
	)
	containers := http.NewContainersHandler(services.Catalog, services.Simulator)

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
	}
	if cfg.Server.RateLimit > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
		routerCfg.WriteLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	healthHandler := http.NewHealthHandler()
	if routerCfg.RateLimiter != nil {
		healthHandler.RegisterStats("rate_limiter", func() interface{} {
			return routerCfg.RateLimiter.Stats()
		})
	}

	if dbComponents != nil {
		healthHandler.RegisterChecker("mongodb", http.HealthCheckerFunc(dbComponents.HealthCheck))
		healthHandler.RegisterCircuitBreaker(containersBreakerName, dbComponents.ContainersCircuitBreaker)
		healthHandler.RegisterCircuitBreaker(logsBreakerName, dbComponents.LogsCircuitBreaker)
	}

	if loggingService != nil {
		middleware.InitAsyncLogger(loggingService, middleware.AsyncLoggerConfig{
			BufferSize: cfg.Database.LogBufferSize,
			NumWorkers: cfg.Database.LogWorkers,
		})
		healthHandler.RegisterStats("async_logger", func() interface{} {
			if al := middleware.GetAsyncLogger(); al != nil {
				return al.Stats()
			}
			return nil
		})
	}

	return &RouterComponents{
		Simulations:   simulations,
		Containers:    containers,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

// Close stops the rate limiter sweepers and drains the async request logger.
func (r *RouterComponents) Close(context.Context) error {
	if r.Config.RateLimiter != nil {
		r.Config.RateLimiter.Stop()
	}
	if r.Config.WriteLimiter != nil {
		r.Config.WriteLimiter.Stop()
	}
	middleware.StopAsyncLogger()
	return nil
}
