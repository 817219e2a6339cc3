package behavior

import "strings"

// Priority orders contributions to a behavior before they are combined.
// Higher priorities come first in the spec sequence handed to combine rules.
type Priority int

const (
	// PriorityFallback is the weakest level, used for values that should
	// only apply when nothing else is configured.
	PriorityFallback Priority = -1
	// PriorityBase is the level assigned to uses that never picked one.
	PriorityBase Priority = 0
	// PriorityExtend ranks above base contributions.
	PriorityExtend Priority = 1
	// PriorityOverride is the strongest level.
	PriorityOverride Priority = 2

	// PriorityUnset marks a use that inherits the priority of the use that
	// introduced it (or PriorityBase at the top level).
	PriorityUnset Priority = -2_000_000_000
)

func (p Priority) String() string {
	switch p {
	case PriorityFallback:
		return "fallback"
	case PriorityBase:
		return "base"
	case PriorityExtend:
		return "extend"
	case PriorityOverride:
		return "override"
	case PriorityUnset:
		return "unset"
	default:
		return "unknown"
	}
}

// IsSet reports whether p carries an explicit level.
func (p Priority) IsSet() bool {
	return p != PriorityUnset
}

// ParsePriority converts a level name into a Priority. Unknown names map to
// PriorityUnset with ok set to false.
func ParsePriority(value string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "fallback":
		return PriorityFallback, true
	case "base":
		return PriorityBase, true
	case "extend":
		return PriorityExtend, true
	case "override":
		return PriorityOverride, true
	default:
		return PriorityUnset, false
	}
}
