// Package main is the entry point of the loadsim HTTP service.
//
// @title           Loadsim API
// @version         1.0.0
// @description     Container loading simulation: packs product cartons into shipping containers
// @description     with a shelf heuristic and reports volume utilization, overflow and
// @description     printable PDF, Excel, DXF and SVG documents.
//
// @contact.name   API Support
// @contact.url    https://github.com/hyperkh65/loadsim
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for catalog changes. Required when authentication is enabled.
//
// @tag.name        Simulations
// @tag.description Loading simulations, exports and cargo sheet import
//
// @tag.name        Containers
// @tag.description Container type catalog
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/hyperkh65/loadsim/config"
	_ "github.com/hyperkh65/loadsim/docs" // swagger docs
	"github.com/hyperkh65/loadsim/internal/app"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Initialization failed")
	}

	server := app.NewServer(application.Router, cfg.Server.Port,
		app.WithWriteTimeout(cfg.Server.RequestTimeout+cfg.Server.RequestTimeout/2),
		app.WithOnShutdown(func(ctx context.Context) { application.Close(ctx) }),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		application.Close(context.Background())
		log.Fatal().Err(err).Msg("Server error")
	}
}
