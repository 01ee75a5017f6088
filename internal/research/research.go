package research

import (
	"context"

	"github.com/dowserhq/dowser/pkg/models"
)

// Research answers a query by decomposing it into a plan, refining each
// subtask until satisfactory, and synthesizing the completed findings. It is
// the engine's single entry point.
//
// The returned state is always non-nil and carries whatever iterations were
// logged before a failure; the only errors returned are Finder/Critic call
// failures and context cancellation, propagated unmodified. Everything else
// the engine itself can get wrong degrades into valid output.
func (e *Engine) Research(ctx context.Context, query string) (*models.ResearchState, error) {
	state := models.NewResearchState(query)

	e.emitf(EventPlanningStarted, "decomposing query")
	plan, err := e.decompose(ctx, query)
	if err != nil {
		return state, err
	}

	if plan == nil {
		return state, e.singleShot(ctx, state)
	}

	e.emitf(EventPlanCreated, "%d subtasks created", len(plan.Subtasks))
	e.logf("plan accepted: %d subtasks for %q", len(plan.Subtasks), query)

	if err := e.runPlan(ctx, plan, state); err != nil {
		return state, err
	}

	e.emitf(EventSynthesisStarted, "synthesizing %d completed subtasks", plan.CompletedCount())
	synthesis, err := e.synthesize(ctx, plan)
	if err != nil {
		return state, err
	}

	state.FinalSynthesis = synthesis
	state.IsComplete = true
	e.emitf(EventSynthesisFinished, "synthesis complete (%d bytes)", len(synthesis))
	e.emitf(EventSessionDone, "research complete after %d iterations", len(state.Iterations))
	return state, nil
}

// singleShot is the graceful-degradation path when decomposition yields no
// usable plan: one direct Finder call on the original query, recorded as a
// single iteration with the default-optimistic verdict and treated as
// already complete.
func (e *Engine) singleShot(ctx context.Context, state *models.ResearchState) error {
	e.emitf(EventPlanFallback, "decomposition failed, falling back to single-shot research")
	e.logf("single-shot fallback for %q", state.OriginalQuery)

	findings, err := e.finder.Find(ctx, state.OriginalQuery)
	if err != nil {
		return err
	}

	state.RecordIteration(state.OriginalQuery, findings, models.DefaultOptimisticVerdict())
	state.FinalSynthesis = findings
	state.IsComplete = true
	e.emitf(EventSessionDone, "research complete after 1 iteration")
	return nil
}
