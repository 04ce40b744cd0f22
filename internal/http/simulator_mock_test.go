package http

import (
	"github.com/stretchr/testify/mock"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/service"
)

// mockSimulator stands in for service.Simulator in handler tests.
type mockSimulator struct {
	mock.Mock
}

var _ service.Simulator = (*mockSimulator)(nil)

func (m *mockSimulator) Simulate(input service.SimulationInput) (model.Simulation, error) {
	args := m.Called(input)
	sim, _ := args.Get(0).(model.Simulation)
	return sim, args.Error(1)
}

func (m *mockSimulator) InvalidateCache() {
	m.Called()
}
