package research

import (
	"context"

	"github.com/dowserhq/dowser/internal/parse"
	"github.com/dowserhq/dowser/pkg/models"
)

// runSubtask drives the refine-until-satisfactory loop for one subtask,
// mutating it to its terminal state and appending every iteration to the
// session log. The subtask always ends complete: accepted on a satisfactory
// verdict, accepted early when the verdict offers nothing to refine with, or
// force-accepted with the last iteration's findings when the budget runs out.
// Only Finder/Critic call failures and cancellation return errors.
func (e *Engine) runSubtask(ctx context.Context, originalQuery string, sub *models.Subtask, state *models.ResearchState) error {
	query := sub.Query
	var lastFindings string
	var lastScore int

	for iteration := 1; iteration <= e.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		findings, err := e.finder.Find(ctx, query)
		if err != nil {
			return err
		}

		raw, err := e.critic.Evaluate(ctx, e.prompts.evaluation(originalQuery, sub.Query, sub.ExpectedOutcome, findings))
		if err != nil {
			return err
		}
		verdict := parse.Verdict(raw)

		state.RecordIteration(query, findings, verdict)
		e.emit(Event{
			Type:      EventIterationScored,
			SubtaskID: sub.ID,
			Iteration: iteration,
			Score:     verdict.QualityScore,
			Message:   verdict.Reasoning,
		})
		e.logf("subtask %d iteration %d: satisfactory=%v score=%d", sub.ID, iteration, verdict.IsSatisfactory, verdict.QualityScore)

		lastFindings = findings
		lastScore = verdict.QualityScore

		if verdict.IsSatisfactory && verdict.QualityScore >= e.qualityThreshold {
			sub.Complete(findings, verdict.QualityScore)
			return nil
		}

		next, ok := verdict.NextQuery()
		if !ok {
			// Nothing to refine with; accept the current findings.
			e.logf("subtask %d: verdict offered no refinement, accepting at score %d", sub.ID, verdict.QualityScore)
			sub.Complete(findings, verdict.QualityScore)
			return nil
		}

		query = e.prompts.refinement(findings, verdict, next)
	}

	// Budget exhausted: the most recent attempt stands.
	e.logf("subtask %d: iteration budget exhausted, force-accepting at score %d", sub.ID, lastScore)
	sub.Complete(lastFindings, lastScore)
	return nil
}
