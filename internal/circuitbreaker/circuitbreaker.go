// Package circuitbreaker guards calls to MongoDB so a failing database degrades
// the catalog to its presets instead of stalling every request.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned without calling the guarded function while the
// breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	// StateOpen rejects calls until Timeout has passed since the last failure.
	StateOpen
	// StateHalfOpen lets calls through on probation.
	StateHalfOpen
)

var stateNames = [...]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

type Config struct {
	// Name identifies the breaker in logs, metrics and the readiness probe.
	Name string
	// FailureThreshold consecutive failures open a closed breaker.
	FailureThreshold int
	// SuccessThreshold consecutive successes close a half-open breaker.
	SuccessThreshold int
	Timeout          time.Duration
	// OnStateChange runs after every transition with the breaker lock held.
	// It must not call back into the breaker.
	OnStateChange func(name string, from, to State)
}

func DefaultConfig() Config {
	return Config{
		Name:             "mongodb",
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
	}
}

type CircuitBreaker struct {
	cfg Config
	now func() time.Time

	mu          sync.RWMutex
	state       State
	failures    int
	successes   int
	lastFailure time.Time
}

// New returns a closed breaker. Thresholds below one are raised to one.
func New(cfg Config) *CircuitBreaker {
	cfg.FailureThreshold = max(cfg.FailureThreshold, 1)
	cfg.SuccessThreshold = max(cfg.SuccessThreshold, 1)
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

func (cb *CircuitBreaker) Name() string {
	return cb.cfg.Name
}

// Execute runs fn unless the breaker is open. Context cancellation, before
// or during fn, is returned as is and never counts as a failure.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !cb.admit() {
		return ErrCircuitOpen
	}

	err := fn()
	if errors.Is(err, context.Canceled) {
		return err
	}
	cb.record(err)
	return err
}

// admit reports whether a call may proceed, moving an expired open breaker
// to half-open.
func (cb *CircuitBreaker) admit() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return true
	}
	if cb.now().Sub(cb.lastFailure) < cb.cfg.Timeout {
		return false
	}
	cb.successes = 0
	cb.transition(StateHalfOpen)
	return true
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = cb.now()
		if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			cb.transition(StateOpen)
		}
		return
	}

	cb.failures = 0
	if cb.state != StateHalfOpen {
		return
	}
	cb.successes++
	if cb.successes >= cb.cfg.SuccessThreshold {
		cb.successes = 0
		cb.transition(StateClosed)
	}
}

// transition must be called with mu held.
func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to

	event := log.Info()
	if to == StateOpen {
		event = log.Warn()
	}
	event.
		Str("circuit_breaker", cb.cfg.Name).
		Str("from", from.String()).
		Str("to", to.String()).
		Int("failure_count", cb.failures).
		Msg("Circuit breaker state changed")

	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, from, to)
	}
}

func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a snapshot of a breaker for the readiness probe.
type Stats struct {
	Name         string    `json:"name"`
	State        string    `json:"state"`
	FailureCount int       `json:"failure_count"`
	SuccessCount int       `json:"success_count"`
	LastFailure  time.Time `json:"last_failure,omitempty"`
	IsHealthy    bool      `json:"healthy"`
}

func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		Name:         cb.cfg.Name,
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		LastFailure:  cb.lastFailure,
		IsHealthy:    cb.state != StateOpen,
	}
}
