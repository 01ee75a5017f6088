package research

import (
	"context"

	"github.com/dowserhq/dowser/internal/graph"
	"github.com/dowserhq/dowser/internal/parse"
	"github.com/dowserhq/dowser/pkg/models"
)

// decompose asks the Critic to split the query into a plan. It returns a nil
// plan when the response carries no subtasks or the dependency graph fails
// validation; callers fall back to single-shot research. Only a failed
// Critic call is an error.
func (e *Engine) decompose(ctx context.Context, query string) (*models.Plan, error) {
	raw, err := e.critic.Evaluate(ctx, e.prompts.decomposition(query))
	if err != nil {
		return nil, err
	}

	verdict := parse.Verdict(raw)
	if len(verdict.Subtasks) == 0 {
		e.logf("decompose: no subtasks in response (%d bytes)", len(raw))
		return nil, nil
	}

	if err := graph.Validate(verdict.Subtasks); err != nil {
		e.logf("decompose: plan rejected: %v", err)
		return nil, nil
	}

	return models.NewPlan(query, verdict.Reasoning, verdict.Subtasks), nil
}
