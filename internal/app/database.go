package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperkh65/loadsim/config"
	"github.com/hyperkh65/loadsim/internal/circuitbreaker"
	"github.com/hyperkh65/loadsim/internal/metrics"
	"github.com/hyperkh65/loadsim/internal/repository"
	"github.com/hyperkh65/loadsim/internal/service"
)

const (
	containersBreakerName = "mongodb-containers"
	logsBreakerName       = "mongodb-logs"
)

var errDatabaseNotConnected = errors.New("database not connected")

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                       *repository.MongoDB
	ContainersRepo           repository.ContainersRepositoryInterface
	LoggingService           service.LoggingService
	ContainersCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker       *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the repositories behind
// circuit breakers. Returns nil if the database is disabled or unreachable.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDBWithConfig(cfg.URI, cfg.DatabaseName, mongoConfig(cfg))
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if cfg.LogsTTL > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index")
		}
		cancel()
	}

	containersCB := newBreaker(cfg, containersBreakerName)
	logsCB := newBreaker(cfg, logsBreakerName)

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	containersRepo := repository.NewContainersRepositoryWithCircuitBreaker(repository.NewContainersRepository(db), containersCB)

	return &DatabaseComponents{
		DB:                       db,
		ContainersRepo:           containersRepo,
		LoggingService:           service.NewLoggingService(logsRepo),
		ContainersCircuitBreaker: containersCB,
		LogsCircuitBreaker:       logsCB,
	}
}

func mongoConfig(cfg config.DatabaseConfig) repository.MongoConfig {
	mc := repository.DefaultMongoConfig()
	if cfg.MaxPoolSize > 0 {
		mc.MaxPoolSize = uint64(cfg.MaxPoolSize)
		if mc.MinPoolSize > mc.MaxPoolSize {
			mc.MinPoolSize = mc.MaxPoolSize
		}
	}
	if cfg.ConnectTimeout > 0 {
		mc.ConnectTimeout = cfg.ConnectTimeout
	}
	return mc
}

func newBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})
}

// HealthCheck pings the database.
func (d *DatabaseComponents) HealthCheck() error {
	if d.DB == nil {
		return errDatabaseNotConnected
	}
	return d.DB.HealthCheck(context.Background())
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
