package behavior

import "testing"

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{in: "fallback", want: PriorityFallback, ok: true},
		{in: " Base ", want: PriorityBase, ok: true},
		{in: "EXTEND", want: PriorityExtend, ok: true},
		{in: "override", want: PriorityOverride, ok: true},
		{in: "urgent", want: PriorityUnset, ok: false},
	}
	for _, tc := range cases {
		got, ok := ParsePriority(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParsePriority(%q) = %s, %v; want %s, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPriorityInheritance(t *testing.T) {
	set := DefineSet[int]()
	if set.Use(1).Priority().IsSet() {
		t.Fatalf("use without priority must be unset")
	}
	if got := set.Use(1).inherit(PriorityExtend).Priority(); got != PriorityExtend {
		t.Fatalf("expected inherited extend, got %s", got)
	}
	if got := set.Use(1, PriorityFallback).inherit(PriorityExtend).Priority(); got != PriorityFallback {
		t.Fatalf("explicit priority must win, got %s", got)
	}
	if got := set.Use(1).WithPriority(PriorityOverride).Priority(); got != PriorityOverride {
		t.Fatalf("WithPriority did not apply, got %s", got)
	}
}

func TestSortedSpecsIsStable(t *testing.T) {
	set := DefineSet[string]()
	other := DefineSet[string]()
	uses := []Use{
		set.Use("a", PriorityBase),
		other.Use("skip", PriorityOverride),
		set.Use("b", PriorityBase),
		set.Use("c", PriorityExtend),
		set.Use("d", PriorityBase),
	}
	got := set.SortedSpecs(uses)
	want := []string{"c", "a", "b", "d"}
	if !equalStrings(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}
