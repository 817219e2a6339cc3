package behavior

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Kind distinguishes the two combination strategies.
type Kind int

const (
	// KindValue behaviors reduce their specs to a single value.
	KindValue Kind = iota
	// KindSet behaviors expose the ordered specs themselves.
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// Type is the identity of a behavior. Types compare by their ID token, never
// by value; only Behavior and SetBehavior implement it.
type Type interface {
	ID() uuid.UUID
	Name() string
	Kind() Kind

	take(s *step, sorted []Use) (any, error)
}

// CombineFunc reduces the priority-sorted specs of a behavior to one value.
type CombineFunc[S, V any] func(specs []S) (V, error)

// overlayFunc is a combine that also reports which spec supplied each
// field of the value.
type overlayFunc[S, V any] func(specs []S) (V, map[string]int, error)

// DeriveFunc maps a resolved value (or a single spec for set behaviors) to
// further uses of other behaviors.
type DeriveFunc[T any] func(T) ([]Use, error)

// Behavior is a reduce-to-value configuration channel.
type Behavior[S, V any] struct {
	id         uuid.UUID
	name       string
	combine    CombineFunc[S, V]
	overlay    overlayFunc[S, V]
	derive     DeriveFunc[V]
	def        S
	hasDefault bool
}

// Define creates a behavior whose value is combine applied to every
// contributed spec. Behaviors are meant to be defined once and shared.
func Define[S, V any](combine CombineFunc[S, V], opts ...Option[S, V]) *Behavior[S, V] {
	cfg := definition[S, V]{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	id := uuid.New()
	return &Behavior[S, V]{
		id:         id,
		name:       nameOrToken(cfg.name, id),
		combine:    combine,
		derive:     cfg.derive,
		def:        cfg.def,
		hasDefault: cfg.hasDefault,
	}
}

func (b *Behavior[S, V]) ID() uuid.UUID { return b.id }
func (b *Behavior[S, V]) Name() string  { return b.name }
func (b *Behavior[S, V]) Kind() Kind    { return KindValue }

// Use contributes spec to the behavior. Without a priority the use inherits
// the priority of whatever introduced it.
func (b *Behavior[S, V]) Use(spec S, priority ...Priority) Use {
	return newUse(b, spec, priority)
}

// Default contributes the configured default spec.
func (b *Behavior[S, V]) Default(priority ...Priority) (Use, error) {
	if !b.hasDefault {
		return Use{}, fmt.Errorf("%w: %s", ErrNoDefaultSpec, b.name)
	}
	return newUse(b, b.def, priority), nil
}

// Get returns the resolved value, reporting false when the behavior was not
// part of the resolution.
func (b *Behavior[S, V]) Get(store *Store) (V, bool) {
	var zero V
	raw, ok := store.Get(b)
	if !ok {
		return zero, false
	}
	value, ok := raw.(V)
	if !ok {
		return zero, raw == nil
	}
	return value, true
}

// HasSubBehavior reports whether other is reachable from b in graph.
func (b *Behavior[S, V]) HasSubBehavior(graph *Graph, other Type) bool {
	return graph.HasSubBehavior(b, other)
}

// SortedSpecs returns the specs of b's uses ordered by descending priority,
// keeping authoring order among equal priorities.
func (b *Behavior[S, V]) SortedSpecs(uses []Use) []S {
	return specsOf[S](sortedUses(b, uses))
}

func (b *Behavior[S, V]) take(s *step, sorted []Use) (any, error) {
	if b.combine == nil && b.overlay == nil {
		return nil, wrapResolveError(b, StageCombine, s.attempt, errMissingCombine)
	}
	var (
		value V
		err   error
	)
	if b.overlay != nil {
		value, s.fields, err = b.overlay(specsOf[S](sorted))
	} else {
		value, err = b.combine(specsOf[S](sorted))
	}
	if err != nil {
		return nil, wrapResolveError(b, StageCombine, s.attempt, err)
	}
	var subs []Use
	if b.derive != nil {
		subs, err = b.derive(value)
		if err != nil {
			return nil, wrapResolveError(b, StageDerive, s.attempt, err)
		}
	}
	if err := s.register(b, subs); err != nil {
		return nil, err
	}
	s.pending.spliceAggregate(b, subs)
	return value, nil
}

// SetBehavior is a collect-as-set channel: its value is the sorted sequence
// of contributed specs.
type SetBehavior[S any] struct {
	id         uuid.UUID
	name       string
	derive     DeriveFunc[S]
	def        S
	hasDefault bool
}

// DefineSet creates a set behavior. A derive function configured through
// WithSetDerive runs once per contributed spec.
func DefineSet[S any](opts ...SetOption[S]) *SetBehavior[S] {
	cfg := setDefinition[S]{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	id := uuid.New()
	return &SetBehavior[S]{
		id:         id,
		name:       nameOrToken(cfg.name, id),
		derive:     cfg.derive,
		def:        cfg.def,
		hasDefault: cfg.hasDefault,
	}
}

func (b *SetBehavior[S]) ID() uuid.UUID { return b.id }
func (b *SetBehavior[S]) Name() string  { return b.name }
func (b *SetBehavior[S]) Kind() Kind    { return KindSet }

// Use contributes spec to the set.
func (b *SetBehavior[S]) Use(spec S, priority ...Priority) Use {
	return newUse(b, spec, priority)
}

// Default contributes the configured default spec.
func (b *SetBehavior[S]) Default(priority ...Priority) (Use, error) {
	if !b.hasDefault {
		return Use{}, fmt.Errorf("%w: %s", ErrNoDefaultSpec, b.name)
	}
	return newUse(b, b.def, priority), nil
}

// Get returns the resolved specs. A behavior that was never used yields an
// empty, non-nil slice.
func (b *SetBehavior[S]) Get(store *Store) []S {
	raw, ok := store.Get(b)
	if !ok {
		return []S{}
	}
	specs, ok := raw.([]S)
	if !ok || specs == nil {
		return []S{}
	}
	return slices.Clone(specs)
}

// HasSubBehavior reports whether other is reachable from b in graph.
func (b *SetBehavior[S]) HasSubBehavior(graph *Graph, other Type) bool {
	return graph.HasSubBehavior(b, other)
}

// SortedSpecs returns the specs of b's uses ordered by descending priority,
// keeping authoring order among equal priorities.
func (b *SetBehavior[S]) SortedSpecs(uses []Use) []S {
	return specsOf[S](sortedUses(b, uses))
}

func (b *SetBehavior[S]) take(s *step, sorted []Use) (any, error) {
	specs := specsOf[S](sorted)
	var failure error
	s.pending.splicePerUse(b, func(use Use) []Use {
		if b.derive == nil || failure != nil {
			return nil
		}
		subs, err := b.derive(specAs[S](use.spec))
		if err != nil {
			failure = wrapResolveError(b, StageDerive, s.attempt, err)
			return nil
		}
		if err := s.register(b, subs); err != nil {
			failure = err
			return nil
		}
		return subs
	})
	if failure != nil {
		return nil, failure
	}
	return specs, nil
}

func nameOrToken(name string, id uuid.UUID) string {
	if name != "" {
		return name
	}
	return "behavior-" + id.String()[:8]
}

type indexedUse struct {
	use      Use
	position int
}

// sortedIndexed collects the uses of t with their list positions and
// stable-sorts them strongest first.
func sortedIndexed(t Type, uses []Use) []indexedUse {
	out := make([]indexedUse, 0, len(uses))
	for i, use := range uses {
		if sameType(use.behavior, t) {
			out = append(out, indexedUse{use: use, position: i})
		}
	}
	slices.SortStableFunc(out, func(a, b indexedUse) int {
		switch {
		case a.use.priority == b.use.priority:
			return 0
		case a.use.priority > b.use.priority:
			return -1
		default:
			return 1
		}
	})
	return out
}

func sortedUses(t Type, uses []Use) []Use {
	indexed := sortedIndexed(t, uses)
	out := make([]Use, len(indexed))
	for i, entry := range indexed {
		out[i] = entry.use
	}
	return out
}

func specsOf[S any](uses []Use) []S {
	specs := make([]S, len(uses))
	for i, use := range uses {
		specs[i] = specAs[S](use.spec)
	}
	return specs
}

func specAs[S any](value any) S {
	spec, _ := value.(S)
	return spec
}

func sameType(a, b Type) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}
