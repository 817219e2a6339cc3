package behavior

import (
	"errors"
	"testing"
)

func TestFirstAndLast(t *testing.T) {
	first, err := First([]string{"a", "b"})
	if err != nil || first != "a" {
		t.Fatalf("First = %q, %v", first, err)
	}
	last, err := Last([]string{"a", "b"})
	if err != nil || last != "b" {
		t.Fatalf("Last = %q, %v", last, err)
	}
	if _, err := First[int](nil); !errors.Is(err, errNoSpecs) {
		t.Fatalf("expected errNoSpecs, got %v", err)
	}
	if _, err := Last[int](nil); !errors.Is(err, errNoSpecs) {
		t.Fatalf("expected errNoSpecs, got %v", err)
	}
}

func TestBooleanCombines(t *testing.T) {
	if ok, _ := AnyTrue([]bool{false, true}); !ok {
		t.Fatalf("AnyTrue should be true")
	}
	if ok, _ := AnyTrue(nil); ok {
		t.Fatalf("AnyTrue on empty should be false")
	}
	if ok, _ := AllTrue([]bool{true, false}); ok {
		t.Fatalf("AllTrue should be false")
	}
	if ok, _ := AllTrue(nil); !ok {
		t.Fatalf("AllTrue on empty should be true")
	}
}

func TestConcatFlattensStrongestFirst(t *testing.T) {
	paths := Define(Concat[string], WithName[[]string, []string]("paths"))
	store, err := Resolve([]Use{
		paths.Use([]string{"/usr/lib"}),
		paths.Use([]string{"/opt/lib", "/home/lib"}, PriorityOverride),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := paths.Get(store)
	want := []string{"/opt/lib", "/home/lib", "/usr/lib"}
	if !equalStrings(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	empty, _ := Concat[int](nil)
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}
