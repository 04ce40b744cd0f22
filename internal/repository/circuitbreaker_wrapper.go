package repository

import (
	"context"
	"errors"

	"github.com/hyperkh65/loadsim/internal/circuitbreaker"
	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// ContainersRepositoryWithCircuitBreaker wraps a containers repository with circuit breaker protection.
// Reads on an open circuit report "nothing stored" so callers fall back to the presets.
type ContainersRepositoryWithCircuitBreaker struct {
	repo           ContainersRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewContainersRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewContainersRepositoryWithCircuitBreaker(repo ContainersRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ContainersRepositoryWithCircuitBreaker {
	return &ContainersRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// List returns the stored containers, or none while the circuit is open.
func (r *ContainersRepositoryWithCircuitBreaker) List(ctx context.Context) ([]model.ContainerRecord, error) {
	var result []model.ContainerRecord
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx)
		return cbErr
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return result, err
}

// GetByCode returns the stored container, or nil while the circuit is open.
func (r *ContainersRepositoryWithCircuitBreaker) GetByCode(ctx context.Context, code string) (*model.ContainerRecord, error) {
	var result *model.ContainerRecord
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetByCode(ctx, code)
		return cbErr
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return result, err
}

// Upsert stores a container. Writes are not degraded: an open circuit is returned as an error.
func (r *ContainersRepositoryWithCircuitBreaker) Upsert(ctx context.Context, container model.Container, updatedBy string) (*model.ContainerRecord, error) {
	var result *model.ContainerRecord
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Upsert(ctx, container, updatedBy)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ContainersRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps a logs repository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry. Log writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries. Log writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
