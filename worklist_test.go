package behavior

import "testing"

func TestNewWorklistFillsUnsetPriorities(t *testing.T) {
	a := DefineSet[string]()
	w := newWorklist([]Use{a.Use("x"), a.Use("y", PriorityOverride)}, PriorityBase)

	if w.uses[0].priority != PriorityBase {
		t.Fatalf("expected unset priority to become base, got %s", w.uses[0].priority)
	}
	if w.uses[1].priority != PriorityOverride {
		t.Fatalf("explicit priority must be kept, got %s", w.uses[1].priority)
	}
}

func TestWorklistSpliceAggregateReplacesFirstMatch(t *testing.T) {
	a := DefineSet(WithSetName[string]("a"))
	b := DefineSet(WithSetName[string]("b"))
	c := DefineSet(WithSetName[string]("c"))

	w := newWorklist([]Use{
		b.Use("b0"),
		a.Use("a0", PriorityExtend),
		b.Use("b1"),
		a.Use("a1", PriorityOverride),
	}, PriorityBase)
	before := w.uses

	w.spliceAggregate(a, []Use{c.Use("c0"), c.Use("c1", PriorityFallback)})

	got := describeUses(w.uses)
	want := []string{"b:b0:base", "c:c0:extend", "c:c1:fallback", "b:b1:base"}
	if !equalStrings(got, want) {
		t.Fatalf("unexpected splice result:\nwant: %v\n got: %v", want, got)
	}
	if len(before) != 4 {
		t.Fatalf("splice must not mutate earlier snapshots")
	}
}

func TestWorklistSplicePerUseReplacesEachMatch(t *testing.T) {
	a := DefineSet(WithSetName[string]("a"))
	b := DefineSet(WithSetName[string]("b"))

	w := newWorklist([]Use{
		a.Use("x", PriorityOverride),
		b.Use("keep"),
		a.Use("y", PriorityFallback),
	}, PriorityBase)

	w.splicePerUse(a, func(use Use) []Use {
		return []Use{b.Use(use.Spec().(string) + "!")}
	})

	got := describeUses(w.uses)
	want := []string{"b:x!:override", "b:keep:base", "b:y!:fallback"}
	if !equalStrings(got, want) {
		t.Fatalf("unexpected splice result:\nwant: %v\n got: %v", want, got)
	}
	if types := w.types(); len(types) != 1 || types[0].Name() != "b" {
		t.Fatalf("expected only b to remain pending, got %v", typeNames(types))
	}
}

func describeUses(uses []Use) []string {
	out := make([]string, len(uses))
	for i, use := range uses {
		out[i] = use.behavior.Name() + ":" + use.spec.(string) + ":" + use.priority.String()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
