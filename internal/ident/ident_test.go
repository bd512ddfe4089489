package ident

import "testing"

func TestNext_UniqueUnderRapidCalls(t *testing.T) {
	a := NewAllocator()

	seen := make(map[int64]bool)
	prev := int64(0)
	for i := 0; i < 1000; i++ {
		id := a.Next()
		if seen[id] {
			t.Fatalf("duplicate id %d at call %d", id, i)
		}
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		seen[id] = true
		prev = id
	}
}

func TestReserve_SkipsLoadedIDs(t *testing.T) {
	a := NewAllocator()
	loaded := a.Next() + 1_000_000
	a.Reserve(loaded)

	if id := a.Next(); id <= loaded {
		t.Errorf("Next() = %d, want > reserved %d", id, loaded)
	}
}

func TestReserve_IgnoresOlderIDs(t *testing.T) {
	a := NewAllocator()
	first := a.Next()
	a.Reserve(first - 1_000_000)

	if id := a.Next(); id <= first {
		t.Errorf("Next() = %d, want > %d after reserving older id", id, first)
	}
}
