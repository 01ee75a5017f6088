package models

import "testing"

func diamondPlan() *Plan {
	return NewPlan("compare A and B", "split by subject", []SubtaskSpec{
		{ID: 1, Query: "research A"},
		{ID: 2, Query: "research B"},
		{ID: 3, Query: "compare A and B", DependsOn: []int{1, 2}},
	})
}

func TestNewPlanCopiesSpecs(t *testing.T) {
	plan := diamondPlan()

	if len(plan.Subtasks) != 3 {
		t.Fatalf("expected 3 subtasks, got %d", len(plan.Subtasks))
	}
	if plan.Subtasks[2].ID != 3 {
		t.Errorf("subtask 2 ID = %d, want 3", plan.Subtasks[2].ID)
	}
	if len(plan.Subtasks[2].DependsOn) != 2 {
		t.Errorf("subtask 3 should depend on 2 tasks, got %d", len(plan.Subtasks[2].DependsOn))
	}
	if plan.Subtasks[0].IsComplete {
		t.Error("new subtasks must start incomplete")
	}
}

func TestNextReadyRespectsDependencies(t *testing.T) {
	plan := diamondPlan()

	// Subtask 3 must never be picked while 1 and 2 are incomplete.
	first := plan.NextReady()
	if first == nil {
		t.Fatal("expected a ready subtask")
	}
	if first.ID == 3 {
		t.Fatal("subtask 3 selected before its dependencies completed")
	}

	first.Complete("findings", 8)
	second := plan.NextReady()
	if second == nil {
		t.Fatal("expected a second ready subtask")
	}
	if second.ID == 3 {
		t.Fatal("subtask 3 selected with one dependency incomplete")
	}

	second.Complete("findings", 8)
	third := plan.NextReady()
	if third == nil || third.ID != 3 {
		t.Fatalf("expected subtask 3 after deps completed, got %+v", third)
	}
}

func TestNextReadyNilWhenAllComplete(t *testing.T) {
	plan := diamondPlan()
	for _, s := range plan.Subtasks {
		s.Complete("done", 7)
	}

	if got := plan.NextReady(); got != nil {
		t.Errorf("NextReady on finished plan = %+v, want nil", got)
	}
}

func TestNextReadyStallsOnCycle(t *testing.T) {
	plan := NewPlan("q", "", []SubtaskSpec{
		{ID: 1, Query: "a", DependsOn: []int{2}},
		{ID: 2, Query: "b", DependsOn: []int{1}},
	})

	if got := plan.NextReady(); got != nil {
		t.Errorf("NextReady on cyclic plan = %+v, want nil", got)
	}
}

func TestNextReadyUnknownDependency(t *testing.T) {
	plan := NewPlan("q", "", []SubtaskSpec{
		{ID: 1, Query: "a", DependsOn: []int{99}},
	})

	if got := plan.NextReady(); got != nil {
		t.Errorf("NextReady with dangling dependency = %+v, want nil", got)
	}
}

func TestAllCompleteRoundTrip(t *testing.T) {
	plan := diamondPlan()

	if plan.AllComplete() {
		t.Error("fresh plan reported AllComplete")
	}
	if plan.CompletedCount() != 0 {
		t.Errorf("fresh plan CompletedCount = %d, want 0", plan.CompletedCount())
	}

	for _, s := range plan.Subtasks {
		s.Complete("done", 6)
	}

	if !plan.AllComplete() {
		t.Error("fully completed plan reported !AllComplete")
	}
	if plan.CompletedCount() != len(plan.Subtasks) {
		t.Errorf("CompletedCount = %d, want %d", plan.CompletedCount(), len(plan.Subtasks))
	}
}

func TestCompleteSetsTerminalState(t *testing.T) {
	s := &Subtask{ID: 1, Query: "q"}
	s.Complete("the findings", 9)

	if !s.IsComplete {
		t.Error("Complete did not set IsComplete")
	}
	if s.Findings != "the findings" {
		t.Errorf("Findings = %q, want %q", s.Findings, "the findings")
	}
	if s.QualityScore != 9 {
		t.Errorf("QualityScore = %d, want 9", s.QualityScore)
	}
}
