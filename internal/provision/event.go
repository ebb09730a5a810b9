package provision

import (
	"fmt"

	"github.com/conn-castle/devstarter/internal/messages"
)

// EventKind separates normal status updates from failures.
type EventKind int

const (
	// EventStatus reports a completed step, a cancellation, or completion.
	EventStatus EventKind = iota
	// EventError reports the failure that ended the run.
	EventError
)

// String returns a lowercase label for the kind.
func (k EventKind) String() string {
	switch k {
	case EventStatus:
		return "status"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is one message from the worker to the presentation layer.
type Event struct {
	Kind    EventKind
	Message string
	// Step and Total are the progress counters when the event was emitted.
	Step    int
	Total   int
	Percent int
}

// Display returns the line shown in a log view. Errors carry the "Error: "
// prefix; status messages are shown verbatim.
func (e Event) Display() string {
	if e.Kind == EventError {
		return fmt.Sprintf(messages.ProvisionErrorDisplayFmt, e.Message)
	}
	return e.Message
}

// Outcome is how a run ended.
type Outcome int

const (
	// OutcomeCompleted means every step ran.
	OutcomeCompleted Outcome = iota
	// OutcomeCanceled means the cancel flag stopped the install loop.
	OutcomeCanceled
	// OutcomeFailed means a step returned an error.
	OutcomeFailed
)

// String returns a lowercase label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCanceled:
		return "canceled"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result summarizes a finished run.
type Result struct {
	RunID     string
	Outcome   Outcome
	Err       error
	Installed []string
	Percent   int
}
