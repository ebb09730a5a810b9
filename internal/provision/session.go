package provision

import (
	"context"
	"sync"
)

// Starter launches runs; *Worker implements it.
type Starter interface {
	Start(ctx context.Context, req Request) *Run
}

// Session allows at most one active run. Starting while a run is still
// executing is rejected with ErrRunInProgress rather than queued.
type Session struct {
	starter Starter

	mu     sync.Mutex
	active *Run
}

// NewSession returns a Session launching runs through starter.
func NewSession(starter Starter) *Session {
	return &Session{starter: starter}
}

// Start launches a run unless one is already active.
func (s *Session) Start(ctx context.Context, req Request) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && !s.active.Finished() {
		return nil, ErrRunInProgress
	}
	s.active = s.starter.Start(ctx, req)
	return s.active, nil
}

// Active returns the run still executing, or nil.
func (s *Session) Active() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.Finished() {
		return nil
	}
	return s.active
}

// Cancel requests cancellation of the active run, if any. It reports whether
// a run was signaled.
func (s *Session) Cancel() bool {
	if r := s.Active(); r != nil {
		r.Cancel()
		return true
	}
	return false
}
