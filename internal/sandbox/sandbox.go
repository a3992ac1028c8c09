// Package sandbox evaluates user-authored date/time scripts against a
// fixed, enumerated capability set. It deliberately does not execute
// arbitrary code: scripts are limited to assignments, literals, a handful
// of operators, and the built-in date/time functions, and every run is
// bounded by a timeout and an evaluation step budget.
package sandbox

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout bounds a single script run. An endless or pathological
// script fails with a timeout error instead of hanging the host.
const DefaultTimeout = 2 * time.Second

// maxSteps bounds the number of evaluation steps per run.
const maxSteps = 10_000

// Result captures the outcome of a script run. Logs are console-style
// emissions in order; exactly one of Value and Err is meaningful.
type Result struct {
	Value string
	Err   error
	Logs  []string
}

// Executor runs date/time scripts.
type Executor struct {
	timeout time.Duration
	clock   func() time.Time
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithTimeout overrides the per-run timeout.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = d }
}

// WithClock replaces the wall clock. Tests use this to pin now().
func WithClock(clock func() time.Time) ExecutorOption {
	return func(e *Executor) { e.clock = clock }
}

// NewExecutor creates a script executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		timeout: DefaultTimeout,
		clock:   time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Execute runs a script. Each non-empty line is either an assignment
// (`name = expr`) or a bare expression; the value of the last bare
// expression or assignment becomes the result. Errors abort the run and
// replace the value.
func (e *Executor) Execute(ctx context.Context, script string) Result {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	ev := &evaluator{
		ctx:   ctx,
		clock: e.clock,
		vars:  make(map[string]any),
	}

	var last any

	for i, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		v, err := ev.evalLine(line)
		if err != nil {
			return Result{
				Logs: ev.logs,
				Err:  fmt.Errorf("line %d: %w", i+1, err),
			}
		}

		if v != nil {
			last = v
		}
	}

	return Result{
		Logs:  ev.logs,
		Value: formatValue(last),
	}
}

// formatValue renders a script value for display.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format(time.RFC3339)
	case time.Duration:
		return t.String()
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}

		return fmt.Sprintf("%g", t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
