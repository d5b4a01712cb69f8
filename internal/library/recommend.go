package library

import "sort"

const (
	// genreWindow is how many history entries feed the genre tally.
	genreWindow = 20
	// excludeWindow is how many recent history entries are never recommended.
	excludeWindow = 10
)

// Recommend picks up to limit tracks based on listening history.
//
// With no history it falls back to the most recently added tracks. With
// history it finds the dominant genre over the last genreWindow plays,
// excludes the excludeWindow most recent tracks, and fills from matching
// tracks in library order, padding with non-matching tracks when the genre
// pool runs dry.
func Recommend(history []string, repo *Repository, limit int) []*Track {
	if limit <= 0 {
		return nil
	}
	library := repo.All()

	if len(history) == 0 {
		return recentlyAdded(library, limit)
	}

	topGenre := dominantGenre(history, repo)

	excluded := make(map[string]bool, excludeWindow)
	for _, id := range recent(history, excludeWindow) {
		excluded[id] = true
	}

	picked := make(map[string]bool, limit)
	var results []*Track
	for _, t := range library {
		if len(results) >= limit {
			return results
		}
		if excluded[t.ID] || picked[t.ID] {
			continue
		}
		if t.Genre == topGenre || t.Genre == "" {
			results = append(results, t)
			picked[t.ID] = true
		}
	}

	// Genre pool exhausted: pad with whatever the library still has,
	// keeping the exclusion set out and never duplicating a pick.
	for _, t := range library {
		if len(results) >= limit {
			break
		}
		if excluded[t.ID] || picked[t.ID] {
			continue
		}
		results = append(results, t)
		picked[t.ID] = true
	}
	return results
}

// recentlyAdded returns up to limit tracks sorted by DateAdded descending.
// The sort is stable so ties keep library order.
func recentlyAdded(library []*Track, limit int) []*Track {
	sorted := make([]*Track, len(library))
	copy(sorted, library)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateAdded.After(sorted[j].DateAdded)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// dominantGenre tallies genres over the most recent history entries.
// History is iterated most-recent-first, so ties resolve to the genre seen
// first in that order, deterministically. Tracks with no genre and IDs that
// no longer resolve are skipped.
func dominantGenre(history []string, repo *Repository) string {
	counts := make(map[string]int)
	var seen []string
	for _, id := range recent(history, genreWindow) {
		t := repo.FindByID(id)
		if t == nil || t.Genre == "" {
			continue
		}
		if _, ok := counts[t.Genre]; !ok {
			seen = append(seen, t.Genre)
		}
		counts[t.Genre]++
	}

	var top string
	best := 0
	for _, genre := range seen {
		if counts[genre] > best {
			top = genre
			best = counts[genre]
		}
	}
	return top
}

func recent(history []string, n int) []string {
	if len(history) < n {
		return history
	}
	return history[:n]
}
