package library

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when an operation references an unknown track ID.
var ErrNotFound = errors.New("track not found")

// TrackWriter is the durable-store collaborator for new tracks.
type TrackWriter interface {
	AddTrack(t *Track) error
}

// Repository is the in-memory mirror of all known tracks, in insertion
// order. It is the single owner of Track values; the durable write on Add
// is delegated to the writer and is not rolled back on failure — memory
// stays authoritative and the divergence is repaired at the next startup
// load (see ReplaceAll).
type Repository struct {
	tracks []*Track
	byID   map[string]*Track
	writer TrackWriter
	log    zerolog.Logger
}

// NewRepository creates an empty repository. writer may be nil, in which
// case tracks are kept in memory only.
func NewRepository(writer TrackWriter, log zerolog.Logger) *Repository {
	return &Repository{
		byID:   make(map[string]*Track),
		writer: writer,
		log:    log,
	}
}

// Add assigns a fresh ID, appends the track to the mirror and returns the
// ID. The durable write happens after the in-memory mutation; its failure
// is logged, not propagated.
func (r *Repository) Add(t *Track) string {
	t.ID = uuid.NewString()
	if t.DateAdded.IsZero() {
		t.DateAdded = time.Now()
	}
	r.tracks = append(r.tracks, t)
	r.byID[t.ID] = t

	if r.writer != nil {
		if err := r.writer.AddTrack(t); err != nil {
			r.log.Error().Err(err).Str("track_id", t.ID).
				Msg("durable track write failed; memory and store have diverged")
		}
	}
	return t.ID
}

// FindByID returns the track with the given ID, or nil if absent.
func (r *Repository) FindByID(id string) *Track {
	return r.byID[id]
}

// All returns a snapshot of the track list in insertion order.
func (r *Repository) All() []*Track {
	out := make([]*Track, len(r.tracks))
	copy(out, r.tracks)
	return out
}

// IDs returns all track IDs in insertion order.
func (r *Repository) IDs() []string {
	ids := make([]string, len(r.tracks))
	for i, t := range r.tracks {
		ids[i] = t.ID
	}
	return ids
}

// ReplaceAll swaps the whole mirror, used for the bulk load at startup.
func (r *Repository) ReplaceAll(tracks []*Track) {
	r.tracks = make([]*Track, 0, len(tracks))
	r.byID = make(map[string]*Track, len(tracks))
	for _, t := range tracks {
		r.tracks = append(r.tracks, t)
		r.byID[t.ID] = t
	}
}

// Len returns the number of tracks in the repository.
func (r *Repository) Len() int {
	return len(r.tracks)
}
