package gen

import (
	"errors"
	"fmt"
)

// ErrIncompatibleContext is returned when a step is applied to a context
// that lacks the capability it needs.
var ErrIncompatibleContext = errors.New("incompatible generation context")

// Step is one unit of floor generation
type Step interface {
	// CanApply returns true if the context provides what the step needs
	CanApply(ctx Context) bool
	// Apply mutates the context
	Apply(ctx Context) error
}

// Copier is implemented by steps holding per-run state. Queued steps are
// copied so a template can be reused across floors.
type Copier interface {
	CopyStep() Step
}

// CopyStep returns a per-run copy of s, or s itself if it is stateless
func CopyStep(s Step) Step {
	if c, ok := s.(Copier); ok {
		return c.CopyStep()
	}
	return s
}

// Summarizer is implemented by steps that can describe the floor they set up
type Summarizer interface {
	Summary() string
}

// Is returns true if ctx provides capability T
func Is[T any](ctx Context) bool {
	_, ok := ctx.(T)
	return ok
}

// With runs fn against ctx viewed as capability T
func With[T any](step Step, ctx Context, fn func(T) error) error {
	c, ok := ctx.(T)
	if !ok {
		return fmt.Errorf("%w: %s cannot run on %T", ErrIncompatibleContext, StepName(step), ctx)
	}
	return fn(c)
}

// StepName returns a printable name for a step
func StepName(s Step) string {
	if st, ok := s.(fmt.Stringer); ok {
		return st.String()
	}
	return fmt.Sprintf("%T", s)
}

// PriorityStep is a step template paired with the priority it runs at
type PriorityStep = PriorityItem[Step]

// GenSteps is an ordered list of step templates
type GenSteps []PriorityStep

// Add appends a step at the given priority
func (s *GenSteps) Add(p Priority, step Step) {
	*s = append(*s, PriorityStep{Priority: p, Item: step})
}

// Queue copies every template into a fresh queue
func (s GenSteps) Queue() *StepQueue {
	q := NewStepQueue()
	for _, ps := range s {
		q.Enqueue(ps.Priority, CopyStep(ps.Item))
	}
	return q
}

// ApplyGenSteps drains the queue in priority order. Steps whose CanApply
// fails are skipped.
func ApplyGenSteps(ctx Context, queue *StepQueue) error {
	for queue.Count() > 0 {
		p, step := queue.DequeueWithPriority()
		if !step.CanApply(ctx) {
			Logger.Debug("skipping step", "step", StepName(step), "priority", p.String(), "context", fmt.Sprintf("%T", ctx))
			continue
		}
		if ListenGen {
			Logger.Info("apply step", "step", StepName(step), "priority", p.String())
		}
		if err := step.Apply(ctx); err != nil {
			return fmt.Errorf("step %s at priority %s: %w", StepName(step), p, err)
		}
	}
	return nil
}
