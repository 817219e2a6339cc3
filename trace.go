package behavior

import (
	"encoding/json"
)

// Trace captures how a behavior's value came together: the contributions in
// the order combine saw them and the sub-behaviors its derive produced.
type Trace struct {
	Behavior      string         `json:"behavior"`
	Kind          string         `json:"kind"`
	Attempt       int            `json:"attempt"`
	Contributions []Contribution `json:"contributions"`
	SubBehaviors  []string       `json:"sub_behaviors,omitempty"`
	// Fields maps a field path of a layered value to the index in
	// Contributions of the spec that supplied it.
	Fields        map[string]int `json:"fields,omitempty"`
}

// Contribution details one use that fed the resolved value.
type Contribution struct {
	Priority string `json:"priority"`
	Position int    `json:"position"`
	Spec     any    `json:"spec,omitempty"`
}

func newTrace(t Type, attempt int, indexed []indexedUse, derived []Type, fields map[string]int) Trace {
	trace := Trace{
		Behavior:      t.Name(),
		Kind:          t.Kind().String(),
		Attempt:       attempt,
		Contributions: make([]Contribution, len(indexed)),
		Fields:        fields,
	}
	for i, entry := range indexed {
		trace.Contributions[i] = Contribution{
			Priority: entry.use.priority.String(),
			Position: entry.position,
			Spec:     entry.use.spec,
		}
	}
	for _, sub := range derived {
		trace.SubBehaviors = append(trace.SubBehaviors, sub.Name())
	}
	return trace
}

// ToJSON serialises the trace for logging or debugging output.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.MarshalIndent(alias(t), "", "  ")
}

// TraceFromJSON decodes a payload produced by ToJSON. Specs decode into
// their generic JSON representation.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
