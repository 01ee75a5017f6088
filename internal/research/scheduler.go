package research

import (
	"context"

	"github.com/dowserhq/dowser/pkg/models"
)

// runPlan executes the plan's subtasks one at a time in readiness order,
// mutating them in place. When no subtask is ready while the plan is still
// incomplete, the loop stops early and leaves the plan partially complete;
// plan validation makes that unreachable for accepted plans, but the guard
// stays as the stall backstop. Cancellation is checked before each
// selection; an in-flight Finder or Critic call is never preempted.
func (e *Engine) runPlan(ctx context.Context, plan *models.Plan, state *models.ResearchState) error {
	for !plan.AllComplete() {
		if err := ctx.Err(); err != nil {
			return err
		}

		sub := plan.NextReady()
		if sub == nil {
			e.logf("scheduler: no ready subtask with %d/%d complete, stopping early",
				plan.CompletedCount(), len(plan.Subtasks))
			return nil
		}

		e.emit(Event{Type: EventSubtaskStarted, SubtaskID: sub.ID, Message: sub.Query})

		if err := e.runSubtask(ctx, plan.OriginalQuery, sub, state); err != nil {
			return err
		}

		e.emit(Event{
			Type:      EventSubtaskCompleted,
			SubtaskID: sub.ID,
			Score:     sub.QualityScore,
			Message:   sub.Query,
		})
	}
	return nil
}
