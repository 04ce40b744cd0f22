// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

type MockLoggingService struct {
	mock.Mock
}

// NewMockLoggingService creates a mock that asserts its expectations when t finishes.
func NewMockLoggingService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLoggingService {
	m := &MockLoggingService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}
