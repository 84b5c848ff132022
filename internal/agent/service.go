package agent

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Service lifecycle states.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateFailed        State = "failed"
)

var (
	// ErrNotReady means the oracle has not finished loading (or failed to).
	ErrNotReady = errors.New("agent service not ready")
	// ErrBusy means a call is already outstanding; the engine issues at
	// most one at a time.
	ErrBusy = errors.New("agent call already in flight")
)

// Service owns the oracle's lifecycle and enforces the one-outstanding-call
// discipline. Loading only begins once the user has consented to the model
// being fetched, which the caller decides.
type Service struct {
	mu      sync.Mutex
	state   State
	oracle  Oracle
	loadErr error

	inFlight atomic.Bool
}

// NewService creates an uninitialized service.
func NewService() *Service {
	return &Service{state: StateUninitialized}
}

// Load builds the oracle via the given constructor, moving through
// loading to ready or failed. Safe to call from a goroutine; redundant
// calls are no-ops once loading has begun.
func (s *Service) Load(build func() (Oracle, error)) {
	s.mu.Lock()
	if s.state == StateLoading || s.state == StateReady {
		s.mu.Unlock()
		return
	}
	s.state = StateLoading
	s.mu.Unlock()

	oracle, err := build()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.loadErr = err
		slog.Error("agent load failed", "error", err)
		return
	}
	s.oracle = oracle
	s.state = StateReady
	slog.Info("agent ready")
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LoadError returns the error that moved the service to failed, if any.
func (s *Service) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Ready reports whether calls can be issued.
func (s *Service) Ready() bool {
	return s.State() == StateReady
}

// Busy reports whether a call is outstanding. Collaborators use this to
// gate agent-dependent actions.
func (s *Service) Busy() bool {
	return s.inFlight.Load()
}

// Open issues the opening request, holding the in-flight flag for the
// duration of the call.
func (s *Service) Open(ctx context.Context, oc OpeningContext) (*OpeningReply, error) {
	oracle, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer s.inFlight.Store(false)
	return oracle.Open(ctx, oc)
}

// Counter issues a counter-round request under the same discipline.
func (s *Service) Counter(ctx context.Context, cc CounterContext) (*CounterReply, error) {
	oracle, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer s.inFlight.Store(false)
	return oracle.Counter(ctx, cc)
}

func (s *Service) acquire() (Oracle, error) {
	s.mu.Lock()
	oracle, state := s.oracle, s.state
	s.mu.Unlock()
	if state != StateReady {
		return nil, ErrNotReady
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	return oracle, nil
}
