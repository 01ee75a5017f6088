package models

// Verdict is the Critic's structured judgment of a piece of research.
// It is parsed from free-form model output, so every field must tolerate
// being absent.
type Verdict struct {
	// IsSatisfactory reports whether the findings answer the query.
	IsSatisfactory bool `json:"isSatisfactory"`
	// QualityScore rates the findings on a 1-10 scale. The Critic contract
	// clamps it to that range; the parser does not enforce it.
	QualityScore int `json:"qualityScore"`
	// Gaps lists what the findings are missing, in priority order.
	Gaps []string `json:"gaps,omitempty"`
	// FollowUpQuestions lists queries that would close the gaps.
	FollowUpQuestions []string `json:"followUpQuestions,omitempty"`
	// RefinedQuery is the Critic's suggested replacement query, if any.
	RefinedQuery string `json:"refinedQuery,omitempty"`
	// Reasoning explains the verdict.
	Reasoning string `json:"reasoning,omitempty"`
	// Subtasks is populated only when the Critic is acting as planner.
	Subtasks []SubtaskSpec `json:"subtasks,omitempty"`
}

// SubtaskSpec is one node of a decomposition as emitted by the Critic.
type SubtaskSpec struct {
	// ID is unique within a plan. No ordering guarantee beyond uniqueness.
	ID int `json:"id"`
	// Query is the searchable question for this subtask.
	Query string `json:"query"`
	// Rationale explains why this subtask exists.
	Rationale string `json:"rationale,omitempty"`
	// DependsOn lists IDs of subtasks that must complete first.
	DependsOn []int `json:"dependsOn,omitempty"`
	// ExpectedOutcome describes what a good answer looks like.
	ExpectedOutcome string `json:"expectedOutcome,omitempty"`
}

// DefaultOptimisticVerdict returns the verdict substituted when the Critic's
// response could not be parsed. It is deliberately accepting (score 7,
// satisfactory) so a malformed response can never stall the pipeline.
func DefaultOptimisticVerdict() Verdict {
	return Verdict{
		IsSatisfactory: true,
		QualityScore:   7,
		Reasoning:      "evaluation response could not be parsed; accepting findings as-is",
	}
}

// NextQuery returns the query the runner should try next: the refined query
// when present, otherwise the first follow-up question. The second return is
// false when the verdict offers neither.
func (v Verdict) NextQuery() (string, bool) {
	if v.RefinedQuery != "" {
		return v.RefinedQuery, true
	}
	if len(v.FollowUpQuestions) > 0 && v.FollowUpQuestions[0] != "" {
		return v.FollowUpQuestions[0], true
	}
	return "", false
}
