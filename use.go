package behavior

// Use is one contribution to a behavior. Uses are immutable values; build
// them with Behavior.Use, SetBehavior.Use or Default.
type Use struct {
	behavior Type
	spec     any
	priority Priority
}

func newUse(t Type, spec any, priority []Priority) Use {
	p := PriorityUnset
	if len(priority) > 0 {
		p = priority[0]
	}
	return Use{behavior: t, spec: spec, priority: p}
}

// Behavior returns the behavior type the use contributes to.
func (u Use) Behavior() Type { return u.behavior }

// Spec returns the contributed spec.
func (u Use) Spec() any { return u.spec }

// Priority returns the explicit priority or PriorityUnset.
func (u Use) Priority() Priority { return u.priority }

// WithPriority returns a copy of u with priority p.
func (u Use) WithPriority(p Priority) Use {
	u.priority = p
	return u
}

// inherit fills an unset priority from the introducing context.
func (u Use) inherit(p Priority) Use {
	if u.priority.IsSet() {
		return u
	}
	u.priority = p
	return u
}
