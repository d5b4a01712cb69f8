// Package playback owns the playback session: the single state machine
// coordinating load/play/pause/advance against the queue, the track
// repository and the audio primitive.
package playback

// State represents the session state.
type State int

const (
	// Idle means no current track.
	Idle State = iota
	// Loaded means a current track is bound but not playing.
	Loaded
	// Playing means the current track is audible.
	Playing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Loaded:
		return "Loaded"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded or playing.
func (s State) IsActive() bool {
	return s == Loaded || s == Playing
}

// RepeatMode defines what happens when a track reaches its natural end.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatAll:
		return "All"
	case RepeatOne:
		return "One"
	default:
		return "Unknown"
	}
}
