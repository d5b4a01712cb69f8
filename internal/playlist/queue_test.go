package playlist

import "testing"

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.Position() != -1 {
		t.Errorf("Position() = %d, want -1", q.Position())
	}
	if _, ok := q.CurrentID(); ok {
		t.Error("CurrentID() should report absent for empty queue")
	}
}

func TestQueue_SetQueue(t *testing.T) {
	q := NewQueue()

	q.SetQueue([]string{"a", "b", "c"}, "b")

	if q.Position() != 1 {
		t.Errorf("Position() = %d, want 1", q.Position())
	}
	if id, ok := q.CurrentID(); !ok || id != "b" {
		t.Errorf("CurrentID() = %q, %v, want b, true", id, ok)
	}
}

func TestQueue_SetQueue_UnknownStartDefaultsToZero(t *testing.T) {
	q := NewQueue()

	q.SetQueue([]string{"a", "b"}, "missing")

	if q.Position() != 0 {
		t.Errorf("Position() = %d, want 0", q.Position())
	}
}

func TestQueue_SetQueue_Empty(t *testing.T) {
	q := NewQueue()
	q.SetQueue([]string{"a"}, "a")

	q.SetQueue(nil, "a")

	if q.Position() != -1 {
		t.Errorf("Position() = %d, want -1", q.Position())
	}
}

func TestQueue_Advance_ForwardWraps(t *testing.T) {
	q := NewQueue()
	q.SetQueue([]string{"a", "b", "c"}, "c")

	id, ok := q.Advance(Forward, false)

	if !ok || id != "a" {
		t.Errorf("Advance(Forward) = %q, %v, want a, true", id, ok)
	}
}

func TestQueue_Advance_BackwardWraps(t *testing.T) {
	q := NewQueue()
	q.SetQueue([]string{"a", "b", "c"}, "a")

	id, ok := q.Advance(Backward, false)

	if !ok || id != "c" {
		t.Errorf("Advance(Backward) = %q, %v, want c, true", id, ok)
	}
}

// For a non-shuffled queue of length N, N forward advances from any start
// return to the original position.
func TestQueue_Advance_FullCycleReturnsToStart(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	for _, start := range ids {
		q := NewQueue()
		q.SetQueue(ids, start)
		before := q.Position()

		for range ids {
			q.Advance(Forward, false)
		}

		if q.Position() != before {
			t.Errorf("start %s: position after %d advances = %d, want %d",
				start, len(ids), q.Position(), before)
		}
	}
}

func TestQueue_Advance_Empty(t *testing.T) {
	q := NewQueue()

	if _, ok := q.Advance(Forward, false); ok {
		t.Error("Advance on empty queue should return false")
	}
	if q.Position() != -1 {
		t.Errorf("Position() = %d, want -1", q.Position())
	}
}

func TestQueue_Advance_ShuffleUsesRandomIndex(t *testing.T) {
	q := NewQueue()
	q.SetQueue([]string{"a", "b", "c"}, "a")
	q.randIntN = func(n int) int { return 2 }

	// Shuffle ignores direction.
	for _, dir := range []Direction{Forward, Backward} {
		id, ok := q.Advance(dir, true)
		if !ok || id != "c" {
			t.Errorf("Advance(%v, shuffled) = %q, %v, want c, true", dir, id, ok)
		}
	}
}

func TestQueue_Advance_ShuffleStaysInRange(t *testing.T) {
	q := NewQueue()
	q.SetQueue([]string{"a", "b", "c", "d"}, "a")

	for i := 0; i < 100; i++ {
		_, ok := q.Advance(Forward, true)
		if !ok {
			t.Fatal("Advance returned false on non-empty queue")
		}
		if q.Position() < 0 || q.Position() >= q.Len() {
			t.Fatalf("Position() = %d, out of range [0, %d)", q.Position(), q.Len())
		}
	}
}

func TestQueue_IDs_IsCopy(t *testing.T) {
	q := NewQueue()
	q.SetQueue([]string{"a", "b"}, "a")

	ids := q.IDs()
	ids[0] = "mutated"

	if id, _ := q.CurrentID(); id != "a" {
		t.Errorf("CurrentID() = %q after mutating IDs() copy, want a", id)
	}
}
