package key

import "testing"

func TestSetAddRemove(t *testing.T) {
	var s Set
	if !s.Empty() {
		t.Fatal("zero set should be empty")
	}

	s.Add(KeyA)
	s.Add(KeySlash)
	s.Add(KeyA)
	if s.Len() != 2 {
		t.Errorf("expected 2 members, got %d", s.Len())
	}
	if !s.Has(KeyA) || !s.Has(KeySlash) {
		t.Error("expected A and Slash to be members")
	}

	s.Remove(KeyA)
	if s.Has(KeyA) {
		t.Error("A should have been removed")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 member, got %d", s.Len())
	}
}

func TestSetIgnoresUnknown(t *testing.T) {
	s := NewSet(KeyUnknown, Key(250), KeyB)
	if s.Len() != 1 {
		t.Errorf("expected only B, got %v", s)
	}
	if s.Has(KeyUnknown) {
		t.Error("KeyUnknown must never be a member")
	}
}

func TestSetAlgebra(t *testing.T) {
	a := NewSet(KeyA, KeyB, KeyF12)
	b := NewSet(KeyB, KeyC)

	if got := a.Union(b); got != NewSet(KeyA, KeyB, KeyC, KeyF12) {
		t.Errorf("Union = %v", got)
	}
	if got := a.Intersect(b); got != NewSet(KeyB) {
		t.Errorf("Intersect = %v", got)
	}
	if got := a.Difference(b); got != NewSet(KeyA, KeyF12) {
		t.Errorf("Difference = %v", got)
	}
	if !NewSet(KeyB).SubsetOf(a) {
		t.Error("{B} should be a subset of a")
	}
	if b.SubsetOf(a) {
		t.Error("b should not be a subset of a")
	}
}

func TestSetKeysOrdered(t *testing.T) {
	s := NewSet(KeySlash, KeyA, KeyF1)
	keys := s.Keys()

	want := []Key{KeyA, KeyF1, KeySlash}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %v, want %v", i, keys[i], want[i])
		}
	}
	if got := s.String(); got != "{A, F1, Slash}" {
		t.Errorf("String() = %q", got)
	}
}
