package behavior

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// Store is the immutable result of a resolution: one value per behavior
// that took part in it, directly or through derivation.
type Store struct {
	id       string
	values   map[uuid.UUID]any
	traces   map[uuid.UUID]Trace
	order    []Type
	attempts int
}

func newStore() *Store {
	return &Store{
		id:     uuid.NewString(),
		values: make(map[uuid.UUID]any),
		traces: make(map[uuid.UUID]Trace),
	}
}

func (s *Store) put(t Type, value any, trace Trace) {
	s.values[t.ID()] = value
	s.traces[t.ID()] = trace
	s.order = append(s.order, t)
}

// Get looks up the resolved value of t by identity.
func (s *Store) Get(t Type) (any, bool) {
	if s == nil || t == nil {
		return nil, false
	}
	value, ok := s.values[t.ID()]
	return value, ok
}

// Has reports whether t was resolved into the store.
func (s *Store) Has(t Type) bool {
	_, ok := s.Get(t)
	return ok
}

// Len returns the number of resolved behaviors.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Types returns the resolved behaviors in evaluation order.
func (s *Store) Types() []Type {
	if s == nil || len(s.order) == 0 {
		return nil
	}
	out := make([]Type, len(s.order))
	copy(out, s.order)
	return out
}

// ID identifies this resolution, e.g. in activity events.
func (s *Store) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Attempts returns how many attempts the resolution needed; one plus the
// number of restarts.
func (s *Store) Attempts() int {
	if s == nil {
		return 0
	}
	return s.attempts
}

// Trace returns the provenance recorded for t.
func (s *Store) Trace(t Type) (Trace, bool) {
	if s == nil || t == nil {
		return Trace{}, false
	}
	trace, ok := s.traces[t.ID()]
	if !ok {
		return Trace{}, false
	}
	trace.Contributions = slices.Clone(trace.Contributions)
	trace.SubBehaviors = slices.Clone(trace.SubBehaviors)
	trace.Fields = maps.Clone(trace.Fields)
	return trace, true
}
