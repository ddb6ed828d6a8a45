package runutil

import "testing"

func TestLRUSet(t *testing.T) {
	s := NewLRUSet[string](2)
	if s.Add("a") || s.Add("b") {
		t.Fatal("fresh keys reported as present")
	}
	if !s.Add("a") {
		t.Fatal("a should be present")
	}
	// "b" is now least recently seen and is evicted by "c".
	s.Add("c")
	if s.Len() != 2 {
		t.Fatalf("len %d, want 2", s.Len())
	}
	if s.Add("b") {
		t.Fatal("b should have been evicted")
	}
	if !s.Add("c") {
		t.Fatal("c should be present")
	}
}

func TestLRUSetDefaultCapacity(t *testing.T) {
	s := NewLRUSet[int](0)
	for i := 0; i < 10; i++ {
		s.Add(i)
	}
	if s.Len() != 10 {
		t.Fatalf("len %d", s.Len())
	}
}
