package models

// Subtask is one unit of research work in a plan. It is created once by the
// planner and mutated exactly once, to its terminal state, by the subtask
// runner.
type Subtask struct {
	// ID is the planner-assigned identifier, unique within the plan.
	ID int `json:"id"`
	// Query is the searchable question for this subtask.
	Query string `json:"query"`
	// Rationale explains why this subtask exists.
	Rationale string `json:"rationale,omitempty"`
	// DependsOn lists IDs of subtasks that must complete before this one.
	DependsOn []int `json:"dependsOn,omitempty"`
	// ExpectedOutcome describes what a good answer looks like.
	ExpectedOutcome string `json:"expectedOutcome,omitempty"`
	// Findings holds the accepted research output once complete.
	Findings string `json:"findings,omitempty"`
	// QualityScore is the accepted verdict's score once complete.
	QualityScore int `json:"qualityScore,omitempty"`
	// IsComplete reports whether the runner has finished this subtask.
	IsComplete bool `json:"isComplete"`
}

// Complete moves the subtask to its terminal state.
func (s *Subtask) Complete(findings string, score int) {
	s.Findings = findings
	s.QualityScore = score
	s.IsComplete = true
}

// Plan is the full decomposition of one research query. It owns its subtasks
// exclusively.
type Plan struct {
	// OriginalQuery is the user's research question.
	OriginalQuery string `json:"originalQuery"`
	// Subtasks are the decomposed units of work, in planner order.
	Subtasks []*Subtask `json:"subtasks"`
	// Rationale is the planner's explanation of the decomposition.
	Rationale string `json:"rationale,omitempty"`
}

// NewPlan builds a plan from parsed subtask specs.
func NewPlan(originalQuery, rationale string, specs []SubtaskSpec) *Plan {
	subtasks := make([]*Subtask, len(specs))
	for i, spec := range specs {
		subtasks[i] = &Subtask{
			ID:              spec.ID,
			Query:           spec.Query,
			Rationale:       spec.Rationale,
			DependsOn:       spec.DependsOn,
			ExpectedOutcome: spec.ExpectedOutcome,
		}
	}
	return &Plan{
		OriginalQuery: originalQuery,
		Subtasks:      subtasks,
		Rationale:     rationale,
	}
}

// AllComplete reports whether every subtask has finished.
func (p *Plan) AllComplete() bool {
	for _, s := range p.Subtasks {
		if !s.IsComplete {
			return false
		}
	}
	return true
}

// CompletedCount returns the number of finished subtasks.
func (p *Plan) CompletedCount() int {
	n := 0
	for _, s := range p.Subtasks {
		if s.IsComplete {
			n++
		}
	}
	return n
}

// Completed returns the finished subtasks in plan order.
func (p *Plan) Completed() []*Subtask {
	var done []*Subtask
	for _, s := range p.Subtasks {
		if s.IsComplete {
			done = append(done, s)
		}
	}
	return done
}

// NextReady returns the first incomplete subtask whose dependencies have all
// completed, or nil when no subtask is ready. A subtask with no dependencies
// is trivially ready. On a valid DAG nil means the plan is finished; on a
// cyclic graph it means the plan has stalled.
func (p *Plan) NextReady() *Subtask {
	byID := make(map[int]*Subtask, len(p.Subtasks))
	for _, s := range p.Subtasks {
		byID[s.ID] = s
	}

	for _, s := range p.Subtasks {
		if s.IsComplete {
			continue
		}
		ready := true
		for _, depID := range s.DependsOn {
			dep, ok := byID[depID]
			if !ok || !dep.IsComplete {
				ready = false
				break
			}
		}
		if ready {
			return s
		}
	}
	return nil
}
