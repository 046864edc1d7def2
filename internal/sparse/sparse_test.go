package sparse

import (
	"testing"
)

func TestSparseSet_Basic(t *testing.T) {
	s := NewSparseSet(100)

	if !s.IsEmpty() {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	if !s.Insert(5) {
		t.Error("first insert should return true")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should return false")
	}
	if s.Len() != 1 {
		t.Errorf("len should be 1, got %d", s.Len())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Len() != 4 {
		t.Errorf("len should be 4, got %d", s.Len())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("set should be empty after clear")
	}
	if s.Contains(5) {
		t.Error("cleared set should not contain 5")
	}
}

func TestSparseSet_InsertionOrder(t *testing.T) {
	s := NewSparseSet(100)
	for _, v := range []uint32{5, 2, 8, 1} {
		s.Insert(v)
	}

	expected := []uint32{5, 2, 8, 1}
	values := s.Values()
	if len(values) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(values))
	}
	for i, v := range expected {
		if values[i] != v || s.At(i) != v {
			t.Errorf("values[%d] = %d, want %d", i, values[i], v)
		}
	}
}

func TestSparseSet_Grow(t *testing.T) {
	s := NewSparseSet(2)
	tests := []uint32{0, 1, 2, 100, 1000}
	for _, v := range tests {
		if !s.Insert(v) {
			t.Errorf("Insert(%d) = false, want true", v)
		}
	}
	for _, v := range tests {
		if !s.Contains(v) {
			t.Errorf("Contains(%d) = false after grow", v)
		}
	}
	if s.Contains(999) {
		t.Error("Contains(999) = true, want false")
	}
}

func TestSparseSet_Worklist(t *testing.T) {
	// Items inserted while iterating by index are visited in the same pass.
	s := NewSparseSet(4)
	s.Insert(0)
	visited := 0
	for i := 0; i < s.Len(); i++ {
		v := s.At(i)
		visited++
		if v < 5 {
			s.Insert(v + 1)
			s.Insert(v + 2)
		}
	}
	if visited != 7 {
		t.Errorf("visited %d ids, want 7", visited)
	}
}
