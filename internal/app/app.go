// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hyperkh65/loadsim/config"
	"github.com/hyperkh65/loadsim/internal/http"
)

// App is the wired HTTP application and the background workers it owns.
type App struct {
	Router *gin.Engine

	closers []func(context.Context) error
}

// InitializeApp creates and wires all application dependencies.
// The database is optional: when it is disabled or unreachable the catalog
// serves presets only and request logs are not persisted.
func InitializeApp(cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	dbComponents := InitializeDatabase(cfg.Database)

	serviceComponents, err := InitializeServices(cfg, dbComponents)
	if err != nil {
		if dbComponents != nil {
			_ = dbComponents.Close(context.Background())
		}
		return nil, err
	}

	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	app := &App{
		Router: http.NewRouter(
			routerComponents.Simulations,
			routerComponents.Containers,
			routerComponents.HealthHandler,
			routerComponents.Config,
		),
	}
	app.closers = append(app.closers, routerComponents.Close)
	if dbComponents != nil {
		app.closers = append(app.closers, dbComponents.Close)
	}
	return app, nil
}

// Close stops background workers and disconnects from the database.
// Request logs still buffered are flushed before the connection closes.
func (a *App) Close(ctx context.Context) {
	for _, closeFn := range a.closers {
		if err := closeFn(ctx); err != nil {
			log.Warn().Err(err).Msg("Shutdown step failed")
		}
	}
	a.closers = nil
}
