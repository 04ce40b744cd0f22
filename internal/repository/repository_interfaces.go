package repository

import (
	"context"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// ContainersRepositoryInterface defines the interface for container catalog storage.
type ContainersRepositoryInterface interface {
	List(ctx context.Context) ([]model.ContainerRecord, error)
	GetByCode(ctx context.Context, code string) (*model.ContainerRecord, error)
	Upsert(ctx context.Context, container model.Container, updatedBy string) (*model.ContainerRecord, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}
