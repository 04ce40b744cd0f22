package http

import (
	"github.com/gin-gonic/gin"

	"github.com/hyperkh65/loadsim/internal/middleware"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// SimulationRoutes registers the simulate, export and import endpoints.
type SimulationRoutes struct {
	handler *SimulationHandler
}

// NewSimulationRoutes creates a new SimulationRoutes instance.
func NewSimulationRoutes(handler *SimulationHandler) *SimulationRoutes {
	return &SimulationRoutes{handler: handler}
}

// RegisterRoutes registers /simulations. Only the JSON simulate endpoint is
// idempotent; exports and imports are cheap to repeat and not JSON.
func (r *SimulationRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	group := rg.Group("/simulations")

	var simulate []gin.HandlerFunc
	if cfg.idempotency != nil {
		simulate = append(simulate, cfg.idempotency)
	}
	group.POST("", append(simulate, r.handler.Simulate)...)
	group.POST("/export", r.handler.Export)
	group.POST("/import", r.handler.Import)
}

// ContainerRoutes registers the container catalog endpoints.
type ContainerRoutes struct {
	handler *ContainersHandler
}

// NewContainerRoutes creates a new ContainerRoutes instance.
func NewContainerRoutes(handler *ContainersHandler) *ContainerRoutes {
	return &ContainerRoutes{handler: handler}
}

// RegisterRoutes registers /containers. Reads are public; writes need an API
// key when authentication is enabled and are rate limited per actor.
func (r *ContainerRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	group := rg.Group("/containers")
	group.GET("", r.handler.ListContainers)
	group.GET("/:code", r.handler.GetContainer)

	var write []gin.HandlerFunc
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		write = append(write, middleware.APIKeyAuth(cfg.APIKeys))
	}
	if cfg.WriteLimiter != nil {
		write = append(write, cfg.WriteLimiter.ActorRateLimit())
	}
	if cfg.idempotency != nil {
		write = append(write, cfg.idempotency)
	}
	group.PUT("/:code", append(write, r.handler.PutContainer)...)
}
