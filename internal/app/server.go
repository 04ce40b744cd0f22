package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Server runs the HTTP listener until its context ends, then drains
// in-flight requests and runs the shutdown hooks.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	onShutdown      []func(context.Context)
}

type ServerOption func(*Server)

// WithWriteTimeout raises the write timeout so slow exports finish before
// the connection is cut. It never lowers the default.
func WithWriteTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.httpServer.WriteTimeout = max(s.httpServer.WriteTimeout, d)
	}
}

func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithOnShutdown registers fn to run after the listener has drained.
func WithOnShutdown(fn func(context.Context)) ServerOption {
	return func(s *Server) {
		if fn != nil {
			s.onShutdown = append(s.onShutdown, fn)
		}
	}
}

func NewServer(handler http.Handler, port string, opts ...ServerOption) *Server {
	s := &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadTimeout:       defaultReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			MaxHeaderBytes:    1 << 20,
		},
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run listens until ctx is cancelled and then shuts down gracefully. A
// listen failure is returned without running the shutdown hooks.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}

	served := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("Server starting")
		served <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutdown requested, draining connections")
	}
	return s.Shutdown()
}

// Shutdown drains the listener within the shutdown timeout and then runs
// every hook with the same deadline.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	for _, fn := range s.onShutdown {
		fn(ctx)
	}
	if err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}
