package playlist

// DefaultHistoryLimit caps the history at the 50 most recent distinct tracks.
const DefaultHistoryLimit = 50

// History is the recently-played list, most-recent-first, bounded to a
// fixed number of distinct track IDs. An ID already present is not
// re-inserted and keeps its earlier position rather than being bumped to
// the front.
type History struct {
	ids   []string
	limit int
}

// NewHistory creates an empty history with the given cap. A non-positive
// limit falls back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record notes that a track was loaded for playback. Returns false if the
// ID was already present (history unchanged).
func (h *History) Record(id string) bool {
	for _, existing := range h.ids {
		if existing == id {
			return false
		}
	}
	h.ids = append([]string{id}, h.ids...)
	if len(h.ids) > h.limit {
		h.ids = h.ids[:h.limit]
	}
	return true
}

// IDs returns a copy of the history, most-recent-first.
func (h *History) IDs() []string {
	out := make([]string, len(h.ids))
	copy(out, h.ids)
	return out
}

// Len returns the number of recorded IDs.
func (h *History) Len() int {
	return len(h.ids)
}
