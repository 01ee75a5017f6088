package research

import (
	"testing"
	"time"
)

func TestEmitterDeliversEvents(t *testing.T) {
	emitter := NewEmitter(4)

	emitter.Emit(Event{Type: EventPlanningStarted})
	emitter.Emit(Event{Type: EventSessionDone, Message: "done"})

	first := <-emitter.Events()
	if first.Type != EventPlanningStarted {
		t.Errorf("first event = %s, want planning_started", first.Type)
	}
	if first.Timestamp.IsZero() {
		t.Error("emitter should stamp events")
	}

	second := <-emitter.Events()
	if second.Type != EventSessionDone || second.Message != "done" {
		t.Errorf("second event = %+v", second)
	}
}

func TestEmitterDropsWhenFull(t *testing.T) {
	emitter := NewEmitter(1)
	emitter.Emit(Event{Type: EventPlanningStarted})

	done := make(chan struct{})
	go func() {
		emitter.Emit(Event{Type: EventSessionDone}) // no room, nobody draining
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked instead of dropping")
	}

	if emitter.DroppedCount() != 1 {
		t.Errorf("DroppedCount = %d, want 1", emitter.DroppedCount())
	}
}

func TestNilEmitterIsSafe(t *testing.T) {
	var emitter *Emitter
	emitter.Emit(Event{Type: EventSessionDone}) // must not panic
}
