package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/dowserhq/dowser/internal/parse"
	"github.com/dowserhq/dowser/pkg/models"
)

// NoFindingsMessage is returned when a plan finished with zero completed
// subtasks.
const NoFindingsMessage = "No research subtasks completed; there are no findings to report."

// sectionRule separates subtask sections in the aggregate synthesis input.
const sectionRule = "\n\n---\n\n"

// synthesize combines the plan's completed findings into the final
// deliverable. With zero completed subtasks it returns a fixed message and
// with exactly one it returns that subtask's findings verbatim; the Critic
// is only consulted when there is genuinely something to merge.
func (e *Engine) synthesize(ctx context.Context, plan *models.Plan) (string, error) {
	completed := plan.Completed()

	switch len(completed) {
	case 0:
		return NoFindingsMessage, nil
	case 1:
		return completed[0].Findings, nil
	}

	var sb strings.Builder
	for i, sub := range completed {
		if i > 0 {
			sb.WriteString(sectionRule)
		}
		fmt.Fprintf(&sb, "Subtask %d: %s\n\n%s", sub.ID, sub.Query, sub.Findings)
	}

	raw, err := e.critic.Evaluate(ctx, e.prompts.synthesis(plan.OriginalQuery, sb.String()))
	if err != nil {
		return "", err
	}

	// The Critic is told not to emit JSON, but strip a preamble if it does.
	report := parse.TrailingProse(raw, raw)

	// Content-loss diagnostic: flag suspiciously aggressive extraction.
	// Observability only; the extracted text is returned either way.
	if len(raw) > 1000 && len(report) < len(raw)/2 {
		msg := fmt.Sprintf("synthesis extraction kept %d of %d bytes", len(report), len(raw))
		e.logf("%s", msg)
		e.emit(Event{Type: EventDiagnostic, Message: msg})
	}

	return report, nil
}
