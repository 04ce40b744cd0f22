//go:build !integration

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperkh65/loadsim/config"
	"github.com/hyperkh65/loadsim/internal/circuitbreaker"
	"github.com/hyperkh65/loadsim/internal/metrics"
	"github.com/hyperkh65/loadsim/internal/repository"
)

func TestInitializeDatabase_Disabled(t *testing.T) {
	assert.Nil(t, InitializeDatabase(config.DatabaseConfig{Enabled: false}))
}

func TestMongoConfig(t *testing.T) {
	defaults := repository.DefaultMongoConfig()

	tests := []struct {
		name        string
		cfg         config.DatabaseConfig
		wantMax     uint64
		wantMin     uint64
		wantTimeout time.Duration
	}{
		{name: "unset keeps defaults", wantMax: defaults.MaxPoolSize, wantMin: defaults.MinPoolSize, wantTimeout: defaults.ConnectTimeout},
		{name: "pool and timeout", cfg: config.DatabaseConfig{MaxPoolSize: 8, ConnectTimeout: time.Second}, wantMax: 8, wantMin: defaults.MinPoolSize, wantTimeout: time.Second},
		{name: "min follows a tiny max", cfg: config.DatabaseConfig{MaxPoolSize: 1}, wantMax: 1, wantMin: 1, wantTimeout: defaults.ConnectTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := mongoConfig(tt.cfg)
			assert.Equal(t, tt.wantMax, mc.MaxPoolSize)
			assert.Equal(t, tt.wantMin, mc.MinPoolSize)
			assert.Equal(t, tt.wantTimeout, mc.ConnectTimeout)
		})
	}
}

func TestNewBreaker_PublishesState(t *testing.T) {
	cfg := config.DatabaseConfig{
		CircuitBreakerFailureThreshold: 1,
		CircuitBreakerSuccessThreshold: 1,
		CircuitBreakerTimeout:          time.Hour,
	}
	name := "test-" + t.Name()
	gauge := metrics.CircuitBreakerState.WithLabelValues(name)

	cb := newBreaker(cfg, name)
	assert.Equal(t, float64(circuitbreaker.StateClosed), testutil.ToFloat64(gauge))

	err := cb.Execute(context.Background(), func() error { return errors.New("connection reset") })
	require.Error(t, err)
	assert.True(t, cb.IsOpen())
	assert.Equal(t, float64(circuitbreaker.StateOpen), testutil.ToFloat64(gauge))
}

func TestDatabaseComponents_WithoutConnection(t *testing.T) {
	var nilComponents *DatabaseComponents
	assert.NoError(t, nilComponents.Close(context.Background()))

	components := &DatabaseComponents{}
	assert.NoError(t, components.Close(context.Background()))
	assert.ErrorIs(t, components.HealthCheck(), errDatabaseNotConnected)
}
