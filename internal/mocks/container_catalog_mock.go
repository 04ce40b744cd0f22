// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

type MockContainerCatalog struct {
	mock.Mock
}

func (m *MockContainerCatalog) List(ctx context.Context) ([]model.Container, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Container), args.Error(1)
}

func (m *MockContainerCatalog) Get(ctx context.Context, code string) (model.Container, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(model.Container)
	return c, args.Error(1)
}

func (m *MockContainerCatalog) Upsert(ctx context.Context, container model.Container, updatedBy string) (*model.ContainerRecord, error) {
	args := m.Called(ctx, container, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContainerRecord), args.Error(1)
}
