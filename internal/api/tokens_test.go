package api

import "testing"

func TestTokenTrackerAccumulates(t *testing.T) {
	tracker := NewTokenTracker()

	tracker.Add(100, 50)
	tracker.Add(200, 75)

	in, out := tracker.Total()
	if in != 300 || out != 125 {
		t.Errorf("Total = (%d, %d), want (300, 125)", in, out)
	}
	if tracker.Calls() != 2 {
		t.Errorf("Calls = %d, want 2", tracker.Calls())
	}
}

func TestTokenTrackerReset(t *testing.T) {
	tracker := NewTokenTracker()
	tracker.Add(100, 50)
	tracker.Reset()

	in, out := tracker.Total()
	if in != 0 || out != 0 || tracker.Calls() != 0 {
		t.Errorf("after Reset: Total = (%d, %d), Calls = %d; want zeros", in, out, tracker.Calls())
	}
}

func TestTokenTrackerCost(t *testing.T) {
	tracker := NewTokenTracker()
	tracker.Add(1_000_000, 1_000_000)

	if got := tracker.Cost(); got != 18.0 {
		t.Errorf("Cost = %v, want 18.0", got)
	}
}
