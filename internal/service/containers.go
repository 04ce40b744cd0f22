package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/logger"
	"github.com/hyperkh65/loadsim/internal/repository"
)

var (
	// ErrRepositoryNotConfigured is returned for writes when no database is configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrContainerNotFound is returned for codes that are neither a preset nor stored.
	ErrContainerNotFound = errors.New("container not found")
)

// ContainerCatalog resolves container codes to their inner dimensions.
type ContainerCatalog interface {
	List(ctx context.Context) ([]model.Container, error)
	Get(ctx context.Context, code string) (model.Container, error)
	Upsert(ctx context.Context, container model.Container, updatedBy string) (*model.ContainerRecord, error)
}

// ContainerCatalogImpl serves built-in presets, overridden and extended by
// containers stored in the repository when one is configured.
type ContainerCatalogImpl struct {
	presets map[string]model.Container
	order   []string
	repo    repository.ContainersRepositoryInterface
}

// NewContainerCatalog creates a catalog from presets. repo may be nil.
func NewContainerCatalog(presets []model.Container, repo repository.ContainersRepositoryInterface) *ContainerCatalogImpl {
	c := &ContainerCatalogImpl{
		presets: make(map[string]model.Container, len(presets)),
		order:   make([]string, 0, len(presets)),
		repo:    repo,
	}
	for _, p := range presets {
		code := NormalizeCode(p.Code)
		if _, dup := c.presets[code]; dup {
			continue
		}
		p.Code = code
		c.presets[code] = p
		c.order = append(c.order, code)
	}
	return c
}

// NormalizeCode returns the catalog form of a container code.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// List returns presets in their configured order followed by stored-only
// containers sorted by code. Stored containers replace presets of the same code.
func (c *ContainerCatalogImpl) List(ctx context.Context) ([]model.Container, error) {
	stored := map[string]model.Container{}
	if c.repo != nil {
		records, err := c.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list stored containers: %w", err)
		}
		for _, r := range records {
			stored[r.Code] = r.Container
		}
	}

	out := make([]model.Container, 0, len(c.order)+len(stored))
	for _, code := range c.order {
		if s, ok := stored[code]; ok {
			out = append(out, s)
			delete(stored, code)
			continue
		}
		out = append(out, c.presets[code])
	}

	extra := make([]string, 0, len(stored))
	for code := range stored {
		extra = append(extra, code)
	}
	sort.Strings(extra)
	for _, code := range extra {
		out = append(out, stored[code])
	}
	return out, nil
}

// Get returns the container for code. A stored container wins over a preset;
// a repository failure falls back to the preset when one exists.
func (c *ContainerCatalogImpl) Get(ctx context.Context, code string) (model.Container, error) {
	code = NormalizeCode(code)
	preset, isPreset := c.presets[code]

	if c.repo != nil {
		record, err := c.repo.GetByCode(ctx, code)
		switch {
		case err != nil && isPreset:
			log := logger.Logger()
			log.Warn().Err(err).Str("container", code).Msg("Container lookup failed, using preset")
			return preset, nil
		case err != nil:
			return model.Container{}, fmt.Errorf("get container %q: %w", code, err)
		case record != nil:
			return record.Container, nil
		}
	}

	if isPreset {
		return preset, nil
	}
	return model.Container{}, fmt.Errorf("%w: %q", ErrContainerNotFound, code)
}

// Upsert stores a container under its normalized code.
func (c *ContainerCatalogImpl) Upsert(ctx context.Context, container model.Container, updatedBy string) (*model.ContainerRecord, error) {
	if c.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	container.Code = NormalizeCode(container.Code)
	if container.Label == "" {
		container.Label = container.Code
	}

	record, err := c.repo.Upsert(ctx, container, updatedBy)
	if err != nil {
		return nil, fmt.Errorf("store container %q: %w", container.Code, err)
	}
	log := logger.Logger()
	log.Info().
		Str("container", record.Code).
		Int("version", record.Version).
		Str("updated_by", updatedBy).
		Msg("Container stored")
	return record, nil
}
