package models

import (
	"time"

	"github.com/google/uuid"
)

// IterationRecord is one Finder+Critic round, logged permanently regardless
// of outcome. The log is append-only and global across all subtasks.
type IterationRecord struct {
	// IterationNumber is 1-based and monotonically increasing within a session.
	IterationNumber int `json:"iterationNumber"`
	// Query is the text actually sent to the Finder this iteration.
	Query string `json:"query"`
	// Findings is the Finder's output.
	Findings string `json:"findings"`
	// Evaluation is the parsed Critic verdict for the findings.
	Evaluation Verdict `json:"evaluation"`
	// Timestamp is when the iteration was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// ResearchState is one research session: the audit log and final result for
// a single research(query) call. It is created per request and owned by a
// single goroutine; it is not safe for concurrent mutation.
type ResearchState struct {
	// ID identifies the session, e.g. for the history store.
	ID string `json:"id"`
	// OriginalQuery is the user's research question.
	OriginalQuery string `json:"originalQuery"`
	// Iterations is the append-only global iteration log.
	Iterations []IterationRecord `json:"iterations"`
	// IsComplete reports whether the session produced a final synthesis.
	IsComplete bool `json:"isComplete"`
	// FinalSynthesis is the deliverable answer.
	FinalSynthesis string `json:"finalSynthesis,omitempty"`
	// StartedAt is when the session was created.
	StartedAt time.Time `json:"startedAt"`
}

// NewResearchState creates a fresh session for the given query.
func NewResearchState(query string) *ResearchState {
	return &ResearchState{
		ID:            uuid.New().String(),
		OriginalQuery: query,
		StartedAt:     time.Now(),
	}
}

// RecordIteration appends one Finder+Critic round to the session log and
// returns the record. Iteration numbers are assigned here so they stay
// monotonic across subtasks.
func (r *ResearchState) RecordIteration(query, findings string, evaluation Verdict) IterationRecord {
	rec := IterationRecord{
		IterationNumber: len(r.Iterations) + 1,
		Query:           query,
		Findings:        findings,
		Evaluation:      evaluation,
		Timestamp:       time.Now(),
	}
	r.Iterations = append(r.Iterations, rec)
	return rec
}
