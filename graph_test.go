package behavior

import "testing"

func TestGraphAddIsMonotonicAndDeduplicated(t *testing.T) {
	a := DefineSet(WithSetName[int]("a"))
	b := DefineSet(WithSetName[int]("b"))
	c := DefineSet(WithSetName[int]("c"))

	g := NewGraph()
	if !g.Add(a, b) {
		t.Fatalf("expected first edge to be new")
	}
	if g.Add(a, b) {
		t.Fatalf("expected duplicate edge to be ignored")
	}
	g.Add(a, c)
	if g.Edges() != 2 {
		t.Fatalf("expected 2 edges, got %d", g.Edges())
	}

	subs := g.SubBehaviors(a)
	if len(subs) != 2 || subs[0].Name() != "b" || subs[1].Name() != "c" {
		t.Fatalf("expected discovery order [b c], got %v", typeNames(subs))
	}
	if g.SubBehaviors(c) != nil {
		t.Fatalf("expected no sub-behaviors for a leaf")
	}
}

func TestGraphHasSubBehaviorIsTransitive(t *testing.T) {
	a := DefineSet[int]()
	b := DefineSet[int]()
	c := DefineSet[int]()
	d := DefineSet[int]()

	g := NewGraph()
	g.Add(a, b)
	g.Add(b, c)

	if !g.HasSubBehavior(a, c) {
		t.Fatalf("expected a to reach c through b")
	}
	if g.HasSubBehavior(c, a) {
		t.Fatalf("edges must not be followed backwards")
	}
	if g.HasSubBehavior(a, a) {
		t.Fatalf("a does not reach itself without a cycle")
	}
	if g.HasSubBehavior(a, d) {
		t.Fatalf("unrelated behaviors must not be reachable")
	}

	g.Add(c, a)
	if !g.HasSubBehavior(a, a) {
		t.Fatalf("expected a to reach itself once the cycle closes")
	}
}

func TestGraphNilSafety(t *testing.T) {
	var g *Graph
	a := DefineSet[int]()
	if g.Add(a, a) || g.HasSubBehavior(a, a) || g.Edges() != 0 || g.SubBehaviors(a) != nil {
		t.Fatalf("nil graph should behave as empty")
	}
	if NewGraph().Add(a, nil) {
		t.Fatalf("nil child must be ignored")
	}
}
