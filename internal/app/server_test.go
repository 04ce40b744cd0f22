//go:build !integration

package app

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewServer_Defaults(t *testing.T) {
	server := NewServer(okHandler(), "8080")

	require.NotNil(t, server.httpServer)
	assert.Equal(t, ":8080", server.httpServer.Addr)
	assert.Equal(t, defaultReadTimeout, server.httpServer.ReadTimeout)
	assert.Equal(t, defaultWriteTimeout, server.httpServer.WriteTimeout)
	assert.Equal(t, defaultIdleTimeout, server.httpServer.IdleTimeout)
	assert.Equal(t, defaultShutdownTimeout, server.shutdownTimeout)
	assert.Empty(t, server.onShutdown)
}

func TestServerOptions(t *testing.T) {
	tests := []struct {
		name         string
		opt          ServerOption
		wantWrite    time.Duration
		wantShutdown time.Duration
	}{
		{name: "export sized write timeout", opt: WithWriteTimeout(45 * time.Second), wantWrite: 45 * time.Second, wantShutdown: defaultShutdownTimeout},
		{name: "write timeout is never lowered", opt: WithWriteTimeout(5 * time.Second), wantWrite: defaultWriteTimeout, wantShutdown: defaultShutdownTimeout},
		{name: "shutdown timeout", opt: WithShutdownTimeout(time.Second), wantWrite: defaultWriteTimeout, wantShutdown: time.Second},
		{name: "zero shutdown timeout is ignored", opt: WithShutdownTimeout(0), wantWrite: defaultWriteTimeout, wantShutdown: defaultShutdownTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(okHandler(), "8080", tt.opt)
			assert.Equal(t, tt.wantWrite, server.httpServer.WriteTimeout)
			assert.Equal(t, tt.wantShutdown, server.shutdownTimeout)
		})
	}
}

func TestServer_ShutdownRunsHooks(t *testing.T) {
	var calls atomic.Int32
	server := NewServer(okHandler(), "0",
		WithOnShutdown(func(context.Context) { calls.Add(1) }),
		WithOnShutdown(nil),
		WithOnShutdown(func(ctx context.Context) {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			calls.Add(1)
		}),
	)

	require.NoError(t, server.Shutdown())
	assert.Equal(t, int32(2), calls.Load())
}

func TestServer_Run_ListenError(t *testing.T) {
	var hooked atomic.Bool
	server := NewServer(okHandler(), "invalid-port", WithOnShutdown(func(context.Context) { hooked.Store(true) }))

	err := server.Run(context.Background())
	assert.Error(t, err)
	assert.False(t, hooked.Load())
}

func TestServer_Run_StopsWithContext(t *testing.T) {
	var stopped atomic.Bool
	server := NewServer(okHandler(), "0",
		WithShutdownTimeout(time.Second),
		WithOnShutdown(func(context.Context) { stopped.Store(true) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.True(t, stopped.Load())
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}
