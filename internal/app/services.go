package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hyperkh65/loadsim/config"
	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/repository"
	"github.com/hyperkh65/loadsim/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Simulator *service.SimulatorService
	Catalog   *service.ContainerCatalogImpl
}

// InitializeServices builds the simulator and the container catalog.
// db may be nil, in which case the catalog only serves presets.
func InitializeServices(cfg config.Config, db *DatabaseComponents) (*ServiceComponents, error) {
	mode, err := model.ParseRotationMode(cfg.Packing.RotationMode)
	if err != nil {
		return nil, fmt.Errorf("rotation mode: %w", err)
	}

	presets, err := config.LoadContainerCatalog(cfg.Packing.CatalogFile)
	if err != nil {
		return nil, err
	}

	opts := []service.Option{service.WithRotationMode(mode)}
	if cfg.Packing.MaxPlacements > 0 {
		opts = append(opts, service.WithMaxPlacements(cfg.Packing.MaxPlacements))
	}
	if cfg.Cache.MaxPlacements > 0 {
		opts = append(opts, service.WithMaxCachedPlacements(cfg.Cache.MaxPlacements))
	}
	switch {
	case cfg.Cache.Size > 0 && cfg.Cache.Shards > 1:
		opts = append(opts, service.WithShardedCache(cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards))
	case cfg.Cache.Size > 0:
		opts = append(opts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL))
	}

	var repo repository.ContainersRepositoryInterface
	if db != nil && db.ContainersRepo != nil {
		repo = db.ContainersRepo
	}

	log.Info().
		Str("mode", string(mode)).
		Int("presets", len(presets)).
		Bool("stored_containers", repo != nil).
		Msg("Simulation services ready")

	return &ServiceComponents{
		Simulator: service.NewSimulatorService(opts...),
		Catalog:   service.NewContainerCatalog(presets, repo),
	}, nil
}
