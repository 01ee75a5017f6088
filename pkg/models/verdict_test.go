package models

import "testing"

func TestDefaultOptimisticVerdict(t *testing.T) {
	v := DefaultOptimisticVerdict()

	if !v.IsSatisfactory {
		t.Error("default verdict must be satisfactory")
	}
	if v.QualityScore != 7 {
		t.Errorf("QualityScore = %d, want 7", v.QualityScore)
	}
	if len(v.Gaps) != 0 || len(v.FollowUpQuestions) != 0 {
		t.Error("default verdict must have empty gaps and follow-ups")
	}
	if v.Reasoning == "" {
		t.Error("default verdict should explain that parsing failed")
	}
}

func TestNextQueryPrefersRefinedQuery(t *testing.T) {
	v := Verdict{
		RefinedQuery:      "refined",
		FollowUpQuestions: []string{"follow-up"},
	}

	got, ok := v.NextQuery()
	if !ok || got != "refined" {
		t.Errorf("NextQuery = %q, %v; want %q, true", got, ok, "refined")
	}
}

func TestNextQueryFallsBackToFollowUp(t *testing.T) {
	v := Verdict{FollowUpQuestions: []string{"follow-up", "second"}}

	got, ok := v.NextQuery()
	if !ok || got != "follow-up" {
		t.Errorf("NextQuery = %q, %v; want %q, true", got, ok, "follow-up")
	}
}

func TestNextQueryNoneAvailable(t *testing.T) {
	if _, ok := (Verdict{}).NextQuery(); ok {
		t.Error("NextQuery on empty verdict should report none available")
	}
	if _, ok := (Verdict{FollowUpQuestions: []string{""}}).NextQuery(); ok {
		t.Error("NextQuery should ignore empty follow-up strings")
	}
}

func TestRecordIterationNumbersAreMonotonic(t *testing.T) {
	state := NewResearchState("query")

	first := state.RecordIteration("q1", "f1", DefaultOptimisticVerdict())
	second := state.RecordIteration("q2", "f2", DefaultOptimisticVerdict())

	if first.IterationNumber != 1 || second.IterationNumber != 2 {
		t.Errorf("iteration numbers = %d, %d; want 1, 2", first.IterationNumber, second.IterationNumber)
	}
	if len(state.Iterations) != 2 {
		t.Errorf("log length = %d, want 2", len(state.Iterations))
	}
	if state.ID == "" {
		t.Error("session ID should be assigned")
	}
}
