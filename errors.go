package behavior

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoDefaultSpec indicates Default was called on a behavior defined
	// without a default spec.
	ErrNoDefaultSpec = errors.New("behavior: no default spec")
	// ErrSubBehaviorCycle indicates the resolver could not find a behavior
	// without pending dependents.
	ErrSubBehaviorCycle = errors.New("behavior: sub-behavior cycle")
	// ErrAttemptsExhausted indicates a resolver configured with
	// WithMaxAttempts restarted more often than allowed.
	ErrAttemptsExhausted = errors.New("behavior: resolve attempts exhausted")
	// ErrNilBehavior indicates a Use without a behavior type, usually the
	// zero Use value.
	ErrNilBehavior = errors.New("behavior: use has no behavior type")

	errMissingCombine = errors.New("combine function is nil")
	errNoSpecs        = errors.New("no specs to combine")
)

// CycleError lists the behaviors still pending when selection failed. Every
// one of them has a pending dependent, so at least one cycle runs through
// the set.
type CycleError struct {
	Behaviors []string
	Attempt   int
}

func (e *CycleError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Behaviors) == 0 {
		return ErrSubBehaviorCycle.Error()
	}
	return fmt.Sprintf("%s among [%s] (attempt %d)", ErrSubBehaviorCycle, strings.Join(e.Behaviors, ", "), e.Attempt)
}

func (e *CycleError) Unwrap() error {
	return ErrSubBehaviorCycle
}

// IsCycleError reports whether err is, or wraps, a sub-behavior cycle.
func IsCycleError(err error) bool {
	return errors.Is(err, ErrSubBehaviorCycle)
}

// Stage names the user callback that failed while resolving a behavior.
type Stage string

const (
	StageCombine Stage = "combine"
	StageDerive  Stage = "derive"
)

// ResolveError captures which behavior and callback produced err.
type ResolveError struct {
	Behavior string
	Stage    Stage
	Attempt  int
	Err      error
}

func (e *ResolveError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("behavior: %s %s failed (attempt %d): %v", e.Behavior, e.Stage, e.Attempt, e.Err)
}

func (e *ResolveError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapResolveError(t Type, stage Stage, attempt int, err error) error {
	if err == nil {
		return nil
	}
	var resolveErr *ResolveError
	if errors.As(err, &resolveErr) && resolveErr.Behavior != "" {
		return err
	}
	return &ResolveError{
		Behavior: t.Name(),
		Stage:    stage,
		Attempt:  attempt,
		Err:      err,
	}
}
