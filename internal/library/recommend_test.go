package library

import (
	"fmt"
	"testing"
	"time"
)

func recommendRepo(tracks ...*Track) *Repository {
	r := NewRepository(nil, testLogger())
	r.ReplaceAll(tracks)
	return r
}

func TestRecommend_EmptyHistoryFallsBackToRecentlyAdded(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := recommendRepo(
		&Track{ID: "old", DateAdded: base},
		&Track{ID: "new", DateAdded: base.Add(2 * time.Hour)},
		&Track{ID: "mid", DateAdded: base.Add(time.Hour)},
	)

	results := Recommend(nil, repo, 10)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if results[i].ID != id {
			t.Errorf("results[%d].ID = %s, want %s", i, results[i].ID, id)
		}
	}
}

func TestRecommend_EmptyHistoryTiesKeepLibraryOrder(t *testing.T) {
	added := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := recommendRepo(
		&Track{ID: "a", DateAdded: added},
		&Track{ID: "b", DateAdded: added},
	)

	results := Recommend(nil, repo, 2)

	if results[0].ID != "a" || results[1].ID != "b" {
		t.Errorf("tie order = [%s, %s], want [a, b]", results[0].ID, results[1].ID)
	}
}

func TestRecommend_GenreBiasAndExclusion(t *testing.T) {
	// 25 rock tracks and 10 jazz tracks; history holds 15 rock then 5
	// jazz plays, so rock dominates the 20-entry tally and the 10 most
	// recent history entries are excluded from results.
	var tracks []*Track
	var history []string
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("rock%d", i)
		tracks = append(tracks, &Track{ID: id, Genre: "rock"})
	}
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("jazz%d", i)
		tracks = append(tracks, &Track{ID: id, Genre: "jazz"})
	}
	// Most-recent-first: 15 rock, then 5 jazz.
	for i := 0; i < 15; i++ {
		history = append(history, fmt.Sprintf("rock%d", i))
	}
	for i := 0; i < 5; i++ {
		history = append(history, fmt.Sprintf("jazz%d", i))
	}
	repo := recommendRepo(tracks...)

	results := Recommend(history, repo, 5)

	excluded := make(map[string]bool)
	for _, id := range history[:10] {
		excluded[id] = true
	}
	if len(results) != 5 {
		t.Fatalf("len(results) = %d, want 5", len(results))
	}
	for _, tr := range results {
		if tr.Genre != "rock" {
			t.Errorf("recommended %s with genre %q, want rock", tr.ID, tr.Genre)
		}
		if excluded[tr.ID] {
			t.Errorf("recommended %s from the recent-exclusion window", tr.ID)
		}
	}
}

func TestRecommend_GenreTieBreaksOnFirstSeen(t *testing.T) {
	repo := recommendRepo(
		&Track{ID: "j1", Genre: "jazz"},
		&Track{ID: "j2", Genre: "jazz"},
		&Track{ID: "j3", Genre: "jazz"},
		&Track{ID: "r1", Genre: "rock"},
		&Track{ID: "r2", Genre: "rock"},
		&Track{ID: "r3", Genre: "rock"},
	)
	// Two plays each; rock appears first in most-recent-first order, so
	// the tie resolves to rock and the free rock track wins the slot.
	history := []string{"r1", "j1", "r2", "j2"}

	results := Recommend(history, repo, 1)

	if len(results) != 1 || results[0].ID != "r3" {
		t.Errorf("results = %v, want [r3]", results)
	}
}

func TestRecommend_IncludesGenrelessTracks(t *testing.T) {
	repo := recommendRepo(
		&Track{ID: "r1", Genre: "rock"},
		&Track{ID: "untagged", Genre: ""},
		&Track{ID: "j1", Genre: "jazz"},
	)
	history := []string{"r1"}

	results := Recommend(history, repo, 10)

	// r1 excluded (recent); untagged joins rock's pool; j1 pads.
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != "untagged" || results[1].ID != "j1" {
		t.Errorf("results = [%s, %s], want [untagged, j1]", results[0].ID, results[1].ID)
	}
}

func TestRecommend_PaddingNeverDuplicates(t *testing.T) {
	repo := recommendRepo(
		&Track{ID: "a", Genre: "rock"},
		&Track{ID: "b", Genre: "jazz"},
	)
	history := []string{"x"} // unresolvable ID: no genre bias, nothing excluded beyond x

	results := Recommend(history, repo, 10)

	seen := make(map[string]bool)
	for _, tr := range results {
		if seen[tr.ID] {
			t.Errorf("track %s recommended twice", tr.ID)
		}
		seen[tr.ID] = true
	}
	if len(results) != 2 {
		t.Errorf("len(results) = %d, want 2", len(results))
	}
}

func TestRecommend_ZeroLimit(t *testing.T) {
	repo := recommendRepo(&Track{ID: "a"})

	if got := Recommend(nil, repo, 0); got != nil {
		t.Errorf("Recommend(limit=0) = %v, want nil", got)
	}
}
