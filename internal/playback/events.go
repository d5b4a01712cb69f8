package playback

// StateChange is emitted when the session state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a different track finishes loading for
// playback. Carries IDs only; subscribers re-query the repository.
type TrackChange struct {
	PreviousID string
	CurrentID  string
	Index      int // queue index, -1 when the track was loaded outside the queue
}

// QueueChange is emitted when the queue is replaced.
type QueueChange struct {
	IDs   []string
	Index int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	Repeat  RepeatMode
	Shuffle bool
}

// VolumeChange is emitted when the volume is set.
type VolumeChange struct {
	Volume float64
}

// ErrorEvent is emitted when an operation fails inside the session.
type ErrorEvent struct {
	Op      string // e.g. "load", "play"
	TrackID string
	Err     error
}
