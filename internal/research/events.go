package research

import (
	"log"
	"sync/atomic"
	"time"
)

// EventType represents the type of research progress event.
type EventType string

const (
	// EventPlanningStarted indicates decomposition has begun.
	EventPlanningStarted EventType = "planning_started"
	// EventPlanCreated indicates a plan was accepted, with subtask count.
	EventPlanCreated EventType = "plan_created"
	// EventPlanFallback indicates decomposition failed and the engine fell
	// back to single-shot research.
	EventPlanFallback EventType = "plan_fallback"
	// EventSubtaskStarted indicates a subtask's refinement loop has begun.
	EventSubtaskStarted EventType = "subtask_started"
	// EventIterationScored reports one iteration's verdict score.
	EventIterationScored EventType = "iteration_scored"
	// EventSubtaskCompleted indicates a subtask reached its terminal state.
	EventSubtaskCompleted EventType = "subtask_completed"
	// EventSynthesisStarted indicates final synthesis has begun.
	EventSynthesisStarted EventType = "synthesis_started"
	// EventSynthesisFinished indicates the deliverable is ready.
	EventSynthesisFinished EventType = "synthesis_finished"
	// EventSessionDone indicates the research session is complete.
	EventSessionDone EventType = "session_done"
	// EventDiagnostic carries observability-only warnings, e.g. the
	// content-loss check during synthesis extraction.
	EventDiagnostic EventType = "diagnostic"
)

// Event is one progress notification from the engine. Observers receive
// events fire-and-forget; the engine never waits on them.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// SubtaskID is the related subtask, if applicable.
	SubtaskID int
	// Iteration is the refinement iteration number, if applicable.
	Iteration int
	// Score is the verdict quality score, if applicable.
	Score int
	// Message provides additional context.
	Message string
	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Emitter fans research events out to a buffered channel. If the channel is
// full it retries briefly, then drops the event and counts the drop, so a
// slow consumer can never block the research loop.
type Emitter struct {
	events       chan Event
	droppedCount atomic.Uint64
}

// NewEmitter creates an Emitter with the given buffer size.
func NewEmitter(bufferSize int) *Emitter {
	return &Emitter{events: make(chan Event, bufferSize)}
}

// Emit sends an event to the events channel. Safe to call on a nil Emitter.
func (e *Emitter) Emit(event Event) {
	if e == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case e.events <- event:
		return
	default:
	}

	// Give the receiver a moment to drain before dropping.
	select {
	case e.events <- event:
	case <-time.After(100 * time.Millisecond):
		count := e.droppedCount.Add(1)
		if count%10 == 1 {
			log.Printf("[research] WARNING: event channel full, dropped event (total dropped: %d): type=%s", count, event.Type)
		}
	}
}

// Events returns the read-only channel observers drain.
func (e *Emitter) Events() <-chan Event {
	return e.events
}

// DroppedCount returns the total number of dropped events.
func (e *Emitter) DroppedCount() uint64 {
	return e.droppedCount.Load()
}

// Close closes the events channel. Call only after the engine has returned.
func (e *Emitter) Close() {
	close(e.events)
}
