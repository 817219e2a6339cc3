package behavior

import "github.com/google/uuid"

// worklist holds the uses still waiting for resolution. Splices build a new
// slice, so callers may keep references to earlier snapshots.
type worklist struct {
	uses []Use
}

func newWorklist(uses []Use, fill Priority) *worklist {
	out := make([]Use, len(uses))
	for i, use := range uses {
		out[i] = use.inherit(fill)
	}
	return &worklist{uses: out}
}

func (w *worklist) len() int {
	return len(w.uses)
}

// types lists the distinct behavior types in first-appearance order.
func (w *worklist) types() []Type {
	seen := make(map[uuid.UUID]struct{}, len(w.uses))
	out := make([]Type, 0, len(w.uses))
	for _, use := range w.uses {
		id := use.behavior.ID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, use.behavior)
	}
	return out
}

// spliceAggregate removes every use of t. The first one is replaced by subs,
// each inheriting its priority; the rest leave no replacement.
func (w *worklist) spliceAggregate(t Type, subs []Use) {
	out := make([]Use, 0, len(w.uses)+len(subs))
	first := true
	for _, use := range w.uses {
		if !sameType(use.behavior, t) {
			out = append(out, use)
			continue
		}
		if first {
			for _, sub := range subs {
				out = append(out, sub.inherit(use.priority))
			}
			first = false
		}
	}
	w.uses = out
}

// splicePerUse replaces each use of t, in list order, with replace(use),
// every replacement inheriting the priority of the use it replaces.
func (w *worklist) splicePerUse(t Type, replace func(Use) []Use) {
	out := make([]Use, 0, len(w.uses))
	for _, use := range w.uses {
		if !sameType(use.behavior, t) {
			out = append(out, use)
			continue
		}
		if replace == nil {
			continue
		}
		for _, sub := range replace(use) {
			out = append(out, sub.inherit(use.priority))
		}
	}
	w.uses = out
}
