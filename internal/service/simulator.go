// Package service contains the business logic of the loading simulator.
package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/logger"
	"github.com/hyperkh65/loadsim/internal/metrics"
	"github.com/hyperkh65/loadsim/internal/packing"
	"github.com/hyperkh65/loadsim/internal/service/cache"
)

// SimulationInput is everything a simulation run depends on.
type SimulationInput struct {
	Container model.Container
	// Mode overrides the service default when set.
	Mode     model.RotationMode
	Requests []model.BoxRequest
}

// Simulator runs loading simulations.
type Simulator interface {
	Simulate(input SimulationInput) (model.Simulation, error)
	// InvalidateCache drops every cached simulation.
	InvalidateCache()
}

// Option configures a SimulatorService.
type Option func(*SimulatorService)

// DefaultMaxCachedPlacements is the largest result, in placed cartons, the
// result cache keeps by default. Larger simulations are always recomputed.
const DefaultMaxCachedPlacements = 20_000

// SimulatorService implements Simulator on top of the packing engine with an
// optional result cache keyed by an input fingerprint.
type SimulatorService struct {
	mode          model.RotationMode
	maxPlacements int
	maxCached     int
	cache         cache.Cache
	newID         func() string
	now           func() time.Time
}

// NewSimulatorService creates a SimulatorService with the given options.
func NewSimulatorService(opts ...Option) *SimulatorService {
	s := &SimulatorService{
		mode:          model.NoRotation,
		maxPlacements: packing.DefaultMaxPlacements,
		maxCached:     DefaultMaxCachedPlacements,
		newID:         func() string { return uuid.New().String() },
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithRotationMode sets the default rotation mode.
func WithRotationMode(mode model.RotationMode) Option {
	return func(s *SimulatorService) {
		if mode != "" {
			s.mode = mode
		}
	}
}

// WithMaxPlacements sets the engine iteration cap.
func WithMaxPlacements(n int) Option {
	return func(s *SimulatorService) {
		s.maxPlacements = n
	}
}

// WithMaxCachedPlacements sets the largest simulation, in placed cartons,
// that is kept in the result cache. Non-positive values keep the default.
func WithMaxCachedPlacements(n int) Option {
	return func(s *SimulatorService) {
		if n > 0 {
			s.maxCached = n
		}
	}
}

// WithCache enables result caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *SimulatorService) {
		if capacity > 0 {
			s.cache = newTTLCache(capacity, ttl)
		}
	}
}

// WithShardedCache enables a sharded result cache.
func WithShardedCache(capacity int, ttl time.Duration, shards int) Option {
	return func(s *SimulatorService) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, shards)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *SimulatorService) {
		s.cache = c
	}
}

// WithIDGenerator replaces the simulation id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *SimulatorService) {
		s.newID = fn
	}
}

// Mode returns the default rotation mode.
func (s *SimulatorService) Mode() model.RotationMode {
	return s.mode
}

// Simulate packs the requests into the container and summarises the result.
// Invalid input returns an error matching packing.ErrInvalidInput and runs
// past the placement cap match packing.ErrCapacityLimit; overflow is
// reported inside the simulation.
func (s *SimulatorService) Simulate(input SimulationInput) (model.Simulation, error) {
	start := time.Now()
	mode := input.Mode
	if mode == "" {
		mode = s.mode
	}
	requests := packing.NormalizeRequests(input.Requests)

	key := fingerprint(input.Container, mode, requests)
	if s.cache != nil && key != "" {
		if sim, ok := s.cache.Get(key); ok {
			sim.ID = s.newID()
			sim.CreatedAt = s.now()
			metrics.RecordSimulation(time.Since(start), "cached", string(mode))
			return sim, nil
		}
	}

	engine := packing.NewEngine(
		packing.WithRotationMode(mode),
		packing.WithMaxPlacements(s.maxPlacements),
	)
	result, err := engine.Pack(input.Container, requests)
	if err != nil {
		status := "error"
		switch {
		case errors.Is(err, packing.ErrInvalidInput):
			status = "invalid"
		case errors.Is(err, packing.ErrCapacityLimit):
			status = "limit"
		}
		metrics.RecordSimulation(time.Since(start), status, string(mode))
		log := logger.Logger()
		log.Debug().Err(err).Str("container", input.Container.Code).Msg("Simulation rejected")
		return model.Simulation{}, err
	}

	sim := model.Simulation{
		ID:        s.newID(),
		Container: input.Container,
		Mode:      mode,
		Requests:  requests,
		Result:    result,
		Report:    packing.Summarize(input.Container, requests, result),
		CreatedAt: s.now(),
	}

	s.record(sim, time.Since(start))

	if s.cacheable(sim) && key != "" {
		s.cache.Set(key, sim)
		if cm, ok := s.cache.(cache.CacheWithMetrics); ok {
			m := cm.Metrics()
			metrics.UpdateCacheMetrics(m.Size, m.Capacity)
		}
	}

	return sim, nil
}

// cacheable bounds cache memory by entry size as well as entry count.
func (s *SimulatorService) cacheable(sim model.Simulation) bool {
	return s.cache != nil && sim.Result.PlacedCount() <= s.maxCached
}

func (s *SimulatorService) record(sim model.Simulation, elapsed time.Duration) {
	overflow := map[string]int{}
	for _, o := range sim.Result.Overflow {
		overflow[string(o.Reason)] += o.Rejected
	}
	metrics.RecordSimulation(elapsed, "success", string(sim.Mode))
	metrics.RecordPlacement(sim.Container.Code, sim.Result.PlacedCount(), overflow, sim.Report.UtilizationPercent)

	log := logger.ForSimulation(sim.ID, sim.Container.Code)
	log.Info().
		Str("rotation_mode", string(sim.Mode)).
		Int("requests", len(sim.Requests)).
		Int("placed", sim.Result.PlacedCount()).
		Int("overflow", sim.Result.OverflowCount()).
		Float64("utilization_percent", sim.Report.UtilizationPercent).
		Dur("elapsed", elapsed).
		Msg("Simulation completed")

	for _, o := range sim.Result.Overflow {
		log.Warn().
			Str("product", o.Name).
			Int("rejected", o.Rejected).
			Str("reason", string(o.Reason)).
			Msg("Cartons could not be loaded")
	}
}

// InvalidateCache clears the simulation cache.
func (s *SimulatorService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// fingerprintInput is the canonical form hashed into a cache key.
type fingerprintInput struct {
	Container model.Container    `json:"c"`
	Mode      model.RotationMode `json:"m"`
	Requests  []model.BoxRequest `json:"r"`
}

// fingerprint returns a stable hash of the simulation input, or "" when the
// input cannot be encoded (e.g. NaN dimensions, which fail validation anyway).
func fingerprint(container model.Container, mode model.RotationMode, requests []model.BoxRequest) string {
	data, err := json.Marshal(fingerprintInput{Container: container, Mode: mode, Requests: requests})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
