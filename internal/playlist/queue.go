// Package playlist holds the play queue and the recently-played history.
// Both work on track IDs only; resolution back to tracks goes through the
// library repository.
package playlist

import "math/rand/v2"

// Direction selects which way Advance moves through the queue.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Queue is the ordered sequence of track IDs currently being played
// through, plus the current position. Position is always -1 (nothing
// current) or a valid index. The queue is replaced wholesale when the
// playback context changes, never edited incrementally.
type Queue struct {
	ids      []string
	position int

	// randIntN is swapped out in tests for determinism.
	randIntN func(n int) int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		position: -1,
		randIntN: rand.IntN,
	}
}

// SetQueue replaces the sequence and positions it at startID, or index 0
// when startID is not in the new sequence. An empty sequence resets the
// position to -1.
func (q *Queue) SetQueue(ids []string, startID string) {
	q.ids = make([]string, len(ids))
	copy(q.ids, ids)

	if len(q.ids) == 0 {
		q.position = -1
		return
	}
	q.position = 0
	for i, id := range q.ids {
		if id == startID {
			q.position = i
			break
		}
	}
}

// Advance moves the position and returns the new current ID. The queue is
// circular: forward wraps to the start, backward wraps to the end. Under
// shuffle the new position is uniformly random regardless of direction,
// and repeating the current position is allowed. Advancing an empty queue
// is a no-op returning false.
func (q *Queue) Advance(dir Direction, shuffled bool) (string, bool) {
	n := len(q.ids)
	if n == 0 {
		return "", false
	}

	switch {
	case shuffled:
		q.position = q.randIntN(n)
	case dir == Forward:
		q.position = (q.position + 1) % n
	default:
		if q.position <= 0 {
			q.position = n - 1
		} else {
			q.position--
		}
	}
	return q.ids[q.position], true
}

// CurrentID returns the ID at the current position, or false if there is
// no current position.
func (q *Queue) CurrentID() (string, bool) {
	if q.position < 0 || q.position >= len(q.ids) {
		return "", false
	}
	return q.ids[q.position], true
}

// IDs returns a copy of the queued track IDs.
func (q *Queue) IDs() []string {
	out := make([]string, len(q.ids))
	copy(out, q.ids)
	return out
}

// Position returns the current index (-1 if none).
func (q *Queue) Position() int {
	return q.position
}

// Len returns the number of queued IDs.
func (q *Queue) Len() int {
	return len(q.ids)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.ids) == 0
}
