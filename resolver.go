package behavior

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-behavior/pkg/activity"
	"github.com/google/uuid"
)

// Resolver turns a flat list of uses into a Store. It owns the sub-behavior
// graph, so keep one Resolver around to carry discovered edges from one
// resolution to the next. A Resolver must not run two resolutions at once.
type Resolver struct {
	cfg     resolverConfig
	emitter *activity.Emitter
}

// NewResolver constructs a Resolver with a fresh graph unless WithGraph is
// supplied.
func NewResolver(opts ...ResolverOption) *Resolver {
	cfg := applyResolverOptions(opts)
	return &Resolver{
		cfg:     cfg,
		emitter: activity.NewEmitter(cfg.activityHooks, cfg.activityCfg),
	}
}

// Resolve resolves uses with a throwaway resolver.
func Resolve(uses []Use) (*Store, error) {
	return NewResolver().Resolve(uses)
}

// Graph exposes the sub-behavior knowledge gathered so far.
func (r *Resolver) Graph() *Graph {
	return r.cfg.graph
}

// Resolve computes one value per behavior referenced by uses, directly or
// through derivation.
func (r *Resolver) Resolve(uses []Use) (*Store, error) {
	return r.ResolveContext(context.Background(), uses)
}

// ResolveContext is Resolve with a context handed to activity hooks.
// Resolution itself is synchronous and does not observe cancellation.
func (r *Resolver) ResolveContext(ctx context.Context, uses []Use) (*Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	resolveID := uuid.NewString()
	start := time.Now()

	for i, use := range uses {
		if use.behavior == nil {
			err := fmt.Errorf("%w: input index %d", ErrNilBehavior, i)
			r.fail(ctx, resolveID, 0, start, err)
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		if r.cfg.maxAttempts > 0 && attempt > r.cfg.maxAttempts {
			err := fmt.Errorf("%w: gave up after %d", ErrAttemptsExhausted, r.cfg.maxAttempts)
			r.fail(ctx, resolveID, attempt-1, start, err)
			return nil, err
		}

		store, stale, err := r.attempt(uses, attempt)
		if err != nil {
			r.fail(ctx, resolveID, attempt, start, err)
			return nil, err
		}
		if stale != nil {
			r.cfg.logger.LogResolve(ResolveLogEvent{
				Kind:     EventRestart,
				Behavior: stale.Name(),
				Attempt:  attempt,
				Edges:    r.cfg.graph.Edges(),
				Duration: time.Since(start),
			})
			r.emit(ctx, activity.BuildResolveRestartedEvent(activity.ResolutionEventInput{
				ResolveID: resolveID,
				Attempt:   attempt,
				Stale:     stale.Name(),
				Edges:     r.cfg.graph.Edges(),
			}))
			continue
		}

		store.attempts = attempt
		duration := time.Since(start)
		r.cfg.logger.LogResolve(ResolveLogEvent{
			Kind:     EventResolved,
			Attempt:  attempt,
			Edges:    r.cfg.graph.Edges(),
			Duration: duration,
		})
		r.emit(ctx, activity.BuildStoreResolvedEvent(activity.ResolutionEventInput{
			StoreID:   store.ID(),
			ResolveID: resolveID,
			Attempt:   attempt,
			Behaviors: typeNames(store.order),
			Edges:     r.cfg.graph.Edges(),
			Duration:  duration,
		}))
		return store, nil
	}
}

// step is the state one attempt shares with the behavior being evaluated.
type step struct {
	graph   *Graph
	pending *worklist
	attempt int
	derived []Type
	fields  map[string]int
}

// register records the behaviors referenced by subs as sub-behaviors of
// parent.
func (s *step) register(parent Type, subs []Use) error {
	for _, sub := range subs {
		if sub.behavior == nil {
			return fmt.Errorf("%w: derived by %s", ErrNilBehavior, parent.Name())
		}
		s.graph.Add(parent, sub.behavior)
		known := false
		for _, seen := range s.derived {
			if sameType(seen, sub.behavior) {
				known = true
				break
			}
		}
		if !known {
			s.derived = append(s.derived, sub.behavior)
		}
	}
	return nil
}

// attempt runs one pass over uses. A non-nil stale type means a behavior was
// selected twice, so an earlier evaluation ran before all of its uses were
// known and the caller must start over.
func (r *Resolver) attempt(uses []Use, attempt int) (*Store, Type, error) {
	pending := newWorklist(uses, PriorityBase)
	store := newStore()
	s := &step{graph: r.cfg.graph, pending: pending, attempt: attempt}

	for pending.len() > 0 {
		top, err := r.selectTop(pending, attempt)
		if err != nil {
			return nil, nil, err
		}
		if store.Has(top) {
			return nil, top, nil
		}

		start := time.Now()
		indexed := sortedIndexed(top, pending.uses)
		sorted := make([]Use, len(indexed))
		for i, entry := range indexed {
			sorted[i] = entry.use
		}
		s.derived = nil
		s.fields = nil
		value, err := top.take(s, sorted)
		if err != nil {
			return nil, nil, err
		}
		store.put(top, value, newTrace(top, attempt, indexed, s.derived, s.fields))
		r.cfg.logger.LogResolve(ResolveLogEvent{
			Kind:     EventEvaluated,
			Behavior: top.Name(),
			Attempt:  attempt,
			Pending:  pending.len(),
			Edges:    r.cfg.graph.Edges(),
			Duration: time.Since(start),
		})
	}
	return store, nil, nil
}

// selectTop returns the first pending behavior, in list order, that no
// pending behavior (itself included) lists as a sub-behavior.
func (r *Resolver) selectTop(pending *worklist, attempt int) (Type, error) {
	types := pending.types()
	for _, candidate := range types {
		blocked := false
		for _, other := range types {
			if r.cfg.graph.HasSubBehavior(other, candidate) {
				blocked = true
				break
			}
		}
		if !blocked {
			return candidate, nil
		}
	}
	return nil, &CycleError{Behaviors: typeNames(types), Attempt: attempt}
}

func (r *Resolver) fail(ctx context.Context, resolveID string, attempt int, start time.Time, err error) {
	r.cfg.logger.LogResolve(ResolveLogEvent{
		Kind:     EventFailed,
		Attempt:  attempt,
		Edges:    r.cfg.graph.Edges(),
		Duration: time.Since(start),
		Err:      err,
	})
	r.emit(ctx, activity.BuildResolveFailedEvent(activity.ResolutionEventInput{
		ResolveID: resolveID,
		Attempt:   attempt,
		Edges:     r.cfg.graph.Edges(),
		Err:       err,
	}))
}

// emit notifies activity hooks. Hook failures are logged and otherwise
// ignored.
func (r *Resolver) emit(ctx context.Context, event activity.Event) {
	if !r.emitter.Enabled() {
		return
	}
	if err := r.emitter.Emit(ctx, event); err != nil {
		r.cfg.logger.LogResolve(ResolveLogEvent{
			Kind: EventHookFailed,
			Err:  err,
		})
	}
}

func typeNames(types []Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name()
	}
	return names
}
