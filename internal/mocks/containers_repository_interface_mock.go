// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

type MockContainersRepositoryInterface struct {
	mock.Mock
}

func (m *MockContainersRepositoryInterface) List(ctx context.Context) ([]model.ContainerRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContainerRecord), args.Error(1)
}

func (m *MockContainersRepositoryInterface) GetByCode(ctx context.Context, code string) (*model.ContainerRecord, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContainerRecord), args.Error(1)
}

func (m *MockContainersRepositoryInterface) Upsert(ctx context.Context, container model.Container, updatedBy string) (*model.ContainerRecord, error) {
	args := m.Called(ctx, container, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContainerRecord), args.Error(1)
}
