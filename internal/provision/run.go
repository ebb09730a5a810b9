package provision

import (
	"context"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
)

// eventHeadroom covers the events a run emits beyond one per counted step:
// pip upgrade, src folder, and the terminal message, with spare room.
const eventHeadroom = 8

// Run is a handle on a provisioning run executing on its own goroutine.
type Run struct {
	// ID identifies the run in the diagnostics log.
	ID      string
	Request Request

	events   chan Event
	canceled atomic.Bool
	done     chan struct{}
	result   Result
}

// Start launches a run and returns immediately. The event channel is
// buffered for every event the run can emit, so the worker never waits on a
// slow reader.
func (w *Worker) Start(ctx context.Context, req Request) *Run {
	req = req.Normalize()
	r := &Run{
		ID:      ulid.Make().String(),
		Request: req,
		events:  make(chan Event, req.TotalSteps()+eventHeadroom),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(r.done)
		defer close(r.events)
		r.result = w.Execute(ctx, r.ID, req, r.canceled.Load, func(e Event) {
			r.events <- e
		})
	}()
	return r
}

// Events yields the run's events in order and is closed after the last one.
func (r *Run) Events() <-chan Event {
	return r.events
}

// Cancel asks the run to stop after the install in flight. It does not
// interrupt a running subprocess and is safe to call more than once.
func (r *Run) Cancel() {
	r.canceled.Store(true)
}

// CancelRequested reports whether Cancel has been called.
func (r *Run) CancelRequested() bool {
	return r.canceled.Load()
}

// Done is closed once the worker goroutine has returned.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Finished reports whether the worker goroutine has returned.
func (r *Run) Finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the run finishes and returns its result.
func (r *Run) Wait() Result {
	<-r.done
	return r.result
}
