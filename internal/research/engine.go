// Package research implements the iterative research orchestration engine:
// decomposition of a query into a dependency-ordered plan, a
// refine-until-satisfactory loop per subtask, and final synthesis of the
// completed findings.
//
// The engine is single-threaded by design. Subtasks run one at a time in
// readiness order, which keeps the iteration log strictly ordered and the
// external-call budget predictable. The only suspension points are the
// Finder and Critic calls; cancellation is honored at the checkpoints
// between them, never mid-call.
package research

import (
	"fmt"

	"github.com/dowserhq/dowser/internal/roles"
)

// Defaults used when options are not supplied.
const (
	DefaultMaxIterations    = 5
	DefaultQualityThreshold = 5
)

// Engine coordinates a Finder and a Critic to answer research questions.
// Construct it once and reuse it; each Research call owns its own session
// state, so concurrent calls are safe as long as the roles are.
type Engine struct {
	finder           roles.Finder
	critic           roles.Critic
	prompts          Prompts
	maxIterations    int
	qualityThreshold int
	emitter          *Emitter
	observers        []func(Event)
	logger           *DebugLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxIterations sets the refinement budget per subtask.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxIterations = n
		}
	}
}

// WithQualityThreshold sets the verdict score a subtask must reach to be
// accepted before the iteration budget runs out (1-10 scale).
func WithQualityThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.qualityThreshold = n
		}
	}
}

// WithPrompts overrides prompt templates. Empty fields keep the defaults.
func WithPrompts(p Prompts) Option {
	return func(e *Engine) { e.prompts = p.withDefaults() }
}

// WithEmitter attaches a channel-based progress emitter.
func WithEmitter(em *Emitter) Option {
	return func(e *Engine) { e.emitter = em }
}

// WithObserver attaches a progress callback. Observers are invoked inline at
// phase boundaries and must not block.
func WithObserver(fn func(Event)) Option {
	return func(e *Engine) {
		if fn != nil {
			e.observers = append(e.observers, fn)
		}
	}
}

// WithLogger attaches a debug logger.
func WithLogger(l *DebugLogger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine over the given roles.
func NewEngine(finder roles.Finder, critic roles.Critic, opts ...Option) *Engine {
	e := &Engine{
		finder:           finder,
		critic:           critic,
		prompts:          DefaultPrompts(),
		maxIterations:    DefaultMaxIterations,
		qualityThreshold: DefaultQualityThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) emit(ev Event) {
	for _, fn := range e.observers {
		fn(ev)
	}
	e.emitter.Emit(ev)
}

func (e *Engine) logf(format string, args ...interface{}) {
	e.logger.Log(format, args...)
}

func (e *Engine) emitf(t EventType, format string, args ...interface{}) {
	e.emit(Event{Type: t, Message: fmt.Sprintf(format, args...)})
}
