package research

import (
	"context"
	"testing"

	"github.com/dowserhq/dowser/pkg/models"
)

func TestRunPlanRespectsDependencyOrder(t *testing.T) {
	finder := &scriptedFinder{}
	critic := &scriptedCritic{} // always satisfactory
	engine := NewEngine(finder, critic)

	plan := models.NewPlan("q", "", []models.SubtaskSpec{
		{ID: 1, Query: "first"},
		{ID: 2, Query: "second"},
		{ID: 3, Query: "third", DependsOn: []int{1, 2}},
	})
	state := models.NewResearchState("q")

	if err := engine.runPlan(context.Background(), plan, state); err != nil {
		t.Fatalf("runPlan failed: %v", err)
	}

	if !plan.AllComplete() {
		t.Error("plan should be fully complete")
	}
	if len(finder.queries) != 3 {
		t.Fatalf("expected 3 finder calls, got %d", len(finder.queries))
	}
	if finder.queries[2] != "third" {
		t.Errorf("dependent subtask ran at position %v, want last", finder.queries)
	}
}

func TestRunPlanStopsEarlyWhenStalled(t *testing.T) {
	finder := &scriptedFinder{}
	critic := &scriptedCritic{}
	engine := NewEngine(finder, critic)

	// A cyclic plan can only reach runPlan if validation were bypassed; the
	// scheduler must stop quietly rather than spin.
	plan := models.NewPlan("q", "", []models.SubtaskSpec{
		{ID: 1, Query: "a", DependsOn: []int{2}},
		{ID: 2, Query: "b", DependsOn: []int{1}},
		{ID: 3, Query: "c"},
	})
	state := models.NewResearchState("q")

	if err := engine.runPlan(context.Background(), plan, state); err != nil {
		t.Fatalf("runPlan returned error on stall: %v", err)
	}

	if plan.AllComplete() {
		t.Error("stalled plan must remain partially complete")
	}
	if plan.CompletedCount() != 1 {
		t.Errorf("CompletedCount = %d, want 1 (only the independent subtask)", plan.CompletedCount())
	}
}

func TestRunPlanCancelledBeforeSelection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine(&scriptedFinder{}, &scriptedCritic{})
	plan := models.NewPlan("q", "", []models.SubtaskSpec{{ID: 1, Query: "a"}})
	state := models.NewResearchState("q")

	if err := engine.runPlan(ctx, plan, state); err != context.Canceled {
		t.Errorf("runPlan = %v, want context.Canceled", err)
	}
	if plan.CompletedCount() != 0 {
		t.Error("no subtask should run after cancellation")
	}
}

func TestRunPlanGlobalIterationLog(t *testing.T) {
	finder := &scriptedFinder{}
	critic := &scriptedCritic{}
	engine := NewEngine(finder, critic)

	plan := models.NewPlan("q", "", []models.SubtaskSpec{
		{ID: 1, Query: "a"},
		{ID: 2, Query: "b"},
	})
	state := models.NewResearchState("q")

	if err := engine.runPlan(context.Background(), plan, state); err != nil {
		t.Fatalf("runPlan failed: %v", err)
	}

	if len(state.Iterations) != 2 {
		t.Fatalf("expected 2 iterations in the global log, got %d", len(state.Iterations))
	}
	for i, rec := range state.Iterations {
		if rec.IterationNumber != i+1 {
			t.Errorf("iteration %d numbered %d, want monotonic numbering across subtasks", i, rec.IterationNumber)
		}
	}
}
