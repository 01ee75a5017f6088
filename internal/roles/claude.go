package roles

import (
	"context"

	"github.com/dowserhq/dowser/internal/api"
)

const finderSystem = `You are a research assistant. Investigate the query thoroughly and report
your findings as plain text. Include concrete facts, figures, names, and dates
where you know them, and say clearly when you are uncertain.`

const criticSystem = `You are a strict research evaluator. You judge text against criteria and
respond with a single JSON object exactly as instructed in the prompt. Do not
add commentary before the JSON.`

// ClaudeRole is a Claude-backed Finder or Critic sharing one API client.
type ClaudeRole struct {
	kind   Kind
	client *api.Client
	system string
}

// NewClaude constructs a Claude-backed role of the given kind. The second
// return is false for kinds this package does not support; callers decide
// how to degrade.
func NewClaude(kind Kind, client *api.Client) (*ClaudeRole, bool) {
	var system string
	switch kind {
	case KindFinder:
		system = finderSystem
	case KindCritic:
		system = criticSystem
	default:
		return nil, false
	}
	return &ClaudeRole{kind: kind, client: client, system: system}, true
}

// Kind returns the role this instance plays.
func (r *ClaudeRole) Kind() Kind {
	return r.kind
}

// Find implements Finder for KindFinder roles.
func (r *ClaudeRole) Find(ctx context.Context, query string) (string, error) {
	return r.client.Complete(ctx, r.system, query)
}

// Evaluate implements Critic for KindCritic roles.
func (r *ClaudeRole) Evaluate(ctx context.Context, prompt string) (string, error) {
	return r.client.Complete(ctx, r.system, prompt)
}
