package playback

import "time"

// Snapshot is the read-only view the rendering layer pulls after each
// operation. The session never pushes renders.
type Snapshot struct {
	State          State
	CurrentTrackID string
	QueueIDs       []string
	QueueIndex     int
	Shuffled       bool
	Repeat         RepeatMode
	Volume         float64
	Position       time.Duration
	Duration       time.Duration
}

// Service defines the playback session contract.
type Service interface {
	// Playback control
	LoadTrack(id string) error
	Play() error
	Pause() error
	TogglePlayPause() error
	Next() error
	Previous() error
	PlayTrack(id string) error
	Seek(pos time.Duration) error

	// Playback context (playlist selection feeding PlayTrack)
	SetContext(ids []string)
	ClearContext()

	// Mode control
	SetVolume(v float64)
	Volume() float64
	ToggleShuffle() bool
	Shuffle() bool
	SetRepeatMode(mode RepeatMode)
	RepeatMode() RepeatMode
	CycleRepeatMode() RepeatMode

	// State queries
	State() State
	CurrentTrackID() string
	QueueIDs() []string
	QueueIndex() int
	HistoryIDs() []string
	Snapshot() Snapshot

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
