// Package player wraps the opaque audio capability: bind a source, play,
// pause, seek, report position/duration and signal end-of-track. The
// playback session drives it and never looks inside.
package player

import "time"

// State represents the player-level state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Interface defines the audio primitive contract for dependency injection
// and testing.
type Interface interface {
	// BindSource releases any previously bound source and binds a new
	// one. Exactly one decoded source is live at a time. Binding does
	// not start playback.
	BindSource(payload []byte, mimeType string) error
	// Play starts or resumes playback. It fails when no source is bound
	// or the backend refuses to start.
	Play() error
	Pause()
	Seek(pos time.Duration) error
	Position() time.Duration
	Duration() time.Duration
	State() State
	// SetVolume applies a level in [0, 1] immediately.
	SetVolume(level float64)
	// OnFinished registers the callback invoked when the bound source
	// plays to its natural end.
	OnFinished(fn func())
	Close() error
}

// Verify implementations at compile time.
var (
	_ Interface = (*Beep)(nil)
	_ Interface = (*Mock)(nil)
)
