// Package roles defines the two external capabilities the research engine
// consumes: a Finder that turns queries into free-text findings, and a Critic
// that judges text and returns a structured verdict. Transport is the
// implementation's concern; the engine only sees text in, text out.
package roles

import "context"

// Finder performs research for a query and returns findings as free text.
// Implementations may invoke tools internally; that is opaque to the engine.
type Finder interface {
	Find(ctx context.Context, query string) (string, error)
}

// Critic returns free text that the response parser interprets as a verdict.
type Critic interface {
	Evaluate(ctx context.Context, prompt string) (string, error)
}

// FindFunc adapts a function to the Finder interface.
type FindFunc func(ctx context.Context, query string) (string, error)

// Find implements Finder.
func (f FindFunc) Find(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

// EvaluateFunc adapts a function to the Critic interface.
type EvaluateFunc func(ctx context.Context, prompt string) (string, error)

// Evaluate implements Critic.
func (f EvaluateFunc) Evaluate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Kind identifies a role implementation. The set is closed: dispatch on Kind
// is exhaustive and unsupported kinds yield an explicit not-ok result rather
// than a panic or error.
type Kind int

const (
	// KindFinder is the research role.
	KindFinder Kind = iota + 1
	// KindCritic is the evaluation role.
	KindCritic
)

// String returns the role name.
func (k Kind) String() string {
	switch k {
	case KindFinder:
		return "finder"
	case KindCritic:
		return "critic"
	default:
		return "unknown"
	}
}

// Valid returns true if the kind is a known role.
func (k Kind) Valid() bool {
	return k == KindFinder || k == KindCritic
}
