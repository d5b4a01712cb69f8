package library

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingWriter struct {
	added []string
	err   error
}

func (w *recordingWriter) AddTrack(t *Track) error {
	w.added = append(w.added, t.ID)
	return w.err
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestRepository_Add(t *testing.T) {
	w := &recordingWriter{}
	r := NewRepository(w, testLogger())

	id1 := r.Add(&Track{Name: "Blue Moon"})
	id2 := r.Add(&Track{Name: "Red Sun"})

	if id1 == "" || id2 == "" {
		t.Fatal("Add should assign non-empty IDs")
	}
	if id1 == id2 {
		t.Error("Add assigned the same ID twice")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if len(w.added) != 2 {
		t.Errorf("durable writes = %d, want 2", len(w.added))
	}
}

func TestRepository_Add_SetsDateAdded(t *testing.T) {
	r := NewRepository(nil, testLogger())

	id := r.Add(&Track{Name: "Bluegrass"})

	if r.FindByID(id).DateAdded.IsZero() {
		t.Error("Add should set DateAdded when unset")
	}
}

func TestRepository_Add_WriterFailureKeepsTrack(t *testing.T) {
	w := &recordingWriter{err: errors.New("disk full")}
	r := NewRepository(w, testLogger())

	id := r.Add(&Track{Name: "Blue Moon"})

	// Memory stays authoritative even when the durable write fails.
	if r.FindByID(id) == nil {
		t.Error("track missing from repository after writer failure")
	}
}

func TestRepository_FindByID_Absent(t *testing.T) {
	r := NewRepository(nil, testLogger())

	if got := r.FindByID("nope"); got != nil {
		t.Errorf("FindByID(unknown) = %v, want nil", got)
	}
}

func TestRepository_All_InsertionOrder(t *testing.T) {
	r := NewRepository(nil, testLogger())
	r.Add(&Track{Name: "a"})
	r.Add(&Track{Name: "b"})
	r.Add(&Track{Name: "c"})

	all := r.All()
	want := []string{"a", "b", "c"}
	for i, name := range want {
		if all[i].Name != name {
			t.Errorf("All()[%d].Name = %q, want %q", i, all[i].Name, name)
		}
	}
}

func TestRepository_All_IsSnapshot(t *testing.T) {
	r := NewRepository(nil, testLogger())
	r.Add(&Track{Name: "a"})

	all := r.All()
	r.Add(&Track{Name: "b"})

	if len(all) != 1 {
		t.Errorf("snapshot length = %d, want 1", len(all))
	}
}

func TestRepository_ReplaceAll(t *testing.T) {
	r := NewRepository(nil, testLogger())
	r.Add(&Track{Name: "old"})

	now := time.Now()
	r.ReplaceAll([]*Track{
		{ID: "t1", Name: "one", DateAdded: now},
		{ID: "t2", Name: "two", DateAdded: now},
	})

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if got := r.FindByID("t1"); got == nil || got.Name != "one" {
		t.Errorf("FindByID(t1) = %v, want track 'one'", got)
	}
	if r.FindByID("old") != nil {
		t.Error("ReplaceAll should drop previous tracks")
	}
}

func TestRepository_IDs(t *testing.T) {
	r := NewRepository(nil, testLogger())
	id1 := r.Add(&Track{Name: "a"})
	id2 := r.Add(&Track{Name: "b"})

	ids := r.IDs()
	if len(ids) != 2 || ids[0] != id1 || ids[1] != id2 {
		t.Errorf("IDs() = %v, want [%s %s]", ids, id1, id2)
	}
}
