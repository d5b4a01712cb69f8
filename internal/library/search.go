package library

import "strings"

// Search returns tracks whose name, artist or album contains the query,
// case-insensitively. An empty or whitespace-only query returns the whole
// library. Result order is library order; there is no relevance ranking.
// The scan is linear, which is fine at personal-library scale.
func Search(query string, library []*Track) []*Track {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]*Track, len(library))
		copy(out, library)
		return out
	}

	var results []*Track
	for _, t := range library {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Artist), q) ||
			strings.Contains(strings.ToLower(t.Album), q) {
			results = append(results, t)
		}
	}
	return results
}
