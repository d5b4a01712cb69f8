package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"chime/internal/library"
	"chime/internal/player"
	"chime/internal/playlist"
)

// Errors
var (
	ErrNoTrack    = errors.New("no track loaded")
	ErrQueueEmpty = errors.New("queue is empty")
	ErrClosed     = errors.New("session closed")
)

// StatsWriter is the durable-store collaborator for play bookkeeping.
type StatsWriter interface {
	UpdatePlayStats(id string, playCount int, lastPlayed time.Time) error
}

// Verify session implements Service at compile time.
var _ Service = (*session)(nil)

// session is the single live playback state machine. All mutations of
// shared state happen under mu as one step; the only asynchronous entry
// point is the player's end-of-track callback, which re-checks its load
// generation so a stale completion never clobbers a newer load.
type session struct {
	mu sync.RWMutex

	repo    *library.Repository
	queue   *playlist.Queue
	history *playlist.History
	player  player.Interface
	stats   StatsWriter
	log     zerolog.Logger

	state      State
	currentID  string
	shuffled   bool
	repeat     RepeatMode
	volume     float64
	contextIDs []string

	// loadGen invalidates in-flight end-of-track completions when a
	// newer load supersedes them.
	loadGen uint64

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// New creates the playback session. stats may be nil; play counts then
// live in memory only.
func New(repo *library.Repository, q *playlist.Queue, h *playlist.History,
	p player.Interface, stats StatsWriter, log zerolog.Logger,
) Service {
	return &session{
		repo:    repo,
		queue:   q,
		history: h,
		player:  p,
		stats:   stats,
		log:     log,
		state:   Idle,
		volume:  1,
	}
}

// LoadTrack binds the track's payload to the player and records the play:
// history (deduplicated), play count and last-played timestamp. Any state
// transitions to Loaded. Playback does not start.
func (s *session) LoadTrack(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadTrackLocked(id)
}

func (s *session) loadTrackLocked(id string) error {
	if s.closed {
		return ErrClosed
	}
	t := s.repo.FindByID(id)
	if t == nil {
		return fmt.Errorf("load track %s: %w", id, library.ErrNotFound)
	}

	s.loadGen++
	gen := s.loadGen
	s.player.OnFinished(func() {
		s.handleTrackFinished(gen)
	})

	if err := s.player.BindSource(t.Payload, t.MIMEType); err != nil {
		err = fmt.Errorf("bind track %s: %w", id, err)
		s.broadcastError(ErrorEvent{Op: "load", TrackID: id, Err: err})
		return err
	}

	prev := s.currentID
	prevState := s.state
	s.currentID = t.ID
	s.state = Loaded

	// Records imported before duration probing carry zero; the bound
	// source knows its real length.
	if t.Duration == 0 {
		t.Duration = s.player.Duration()
	}

	s.history.Record(t.ID)
	t.PlayCount++
	now := time.Now()
	t.LastPlayed = &now
	if s.stats != nil {
		if err := s.stats.UpdatePlayStats(t.ID, t.PlayCount, now); err != nil {
			s.log.Error().Err(err).Str("track_id", t.ID).Msg("play stats write failed")
		}
	}

	s.broadcastTrack(TrackChange{PreviousID: prev, CurrentID: t.ID, Index: s.queueIndexOf(t.ID)})
	if prevState != Loaded {
		s.broadcastState(StateChange{Previous: prevState, Current: Loaded})
	}
	return nil
}

// Play starts the loaded track. On a backend refusal the session stays in
// Loaded and the failure is reported, not swallowed.
func (s *session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playLocked()
}

func (s *session) playLocked() error {
	if s.closed {
		return ErrClosed
	}
	if s.state == Idle {
		return ErrNoTrack
	}
	if err := s.player.Play(); err != nil {
		err = fmt.Errorf("start playback: %w", err)
		s.broadcastError(ErrorEvent{Op: "play", TrackID: s.currentID, Err: err})
		return err
	}
	if s.state != Playing {
		prev := s.state
		s.state = Playing
		s.broadcastState(StateChange{Previous: prev, Current: Playing})
	}
	return nil
}

// Pause stops audio output, preserving position.
func (s *session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pauseLocked()
}

func (s *session) pauseLocked() error {
	if s.closed {
		return ErrClosed
	}
	if s.state != Playing {
		return nil
	}
	s.player.Pause()
	s.state = Loaded
	s.broadcastState(StateChange{Previous: Playing, Current: Loaded})
	return nil
}

// TogglePlayPause dispatches to Play or Pause based on the current state.
func (s *session) TogglePlayPause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Playing {
		return s.pauseLocked()
	}
	return s.playLocked()
}

// Next advances the queue forward and plays the resolved track.
func (s *session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked(playlist.Forward)
}

// Previous advances the queue backward and plays the resolved track.
// Under shuffle both directions pick a random queue position.
func (s *session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked(playlist.Backward)
}

func (s *session) advanceLocked(dir playlist.Direction) error {
	if s.closed {
		return ErrClosed
	}
	// Queue entries can outlive their repository records; skip past dead
	// slots rather than spending the advance on one. Bounded by the queue
	// length so a fully dead queue terminates.
	for range s.queue.Len() {
		id, ok := s.queue.Advance(dir, s.shuffled)
		if !ok {
			// Empty queue advances nowhere.
			return nil
		}
		if s.repo.FindByID(id) == nil {
			s.log.Warn().Str("track_id", id).Msg("queued track no longer in library")
			continue
		}
		if err := s.loadTrackLocked(id); err != nil {
			return err
		}
		return s.playLocked()
	}
	return fmt.Errorf("advance: %w", library.ErrNotFound)
}

// PlayTrack starts explicit playback of a track: the queue is replaced by
// the current playlist context if one is set and non-empty, otherwise by
// the entire library in repository order, positioned at the chosen track.
func (s *session) PlayTrack(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	ids := s.contextIDs
	if len(ids) == 0 {
		ids = s.repo.IDs()
	}
	if len(ids) == 0 {
		return ErrQueueEmpty
	}
	s.queue.SetQueue(ids, id)
	s.broadcastQueue(QueueChange{IDs: s.queue.IDs(), Index: s.queue.Position()})

	current, ok := s.queue.CurrentID()
	if !ok {
		return ErrQueueEmpty
	}
	if err := s.loadTrackLocked(current); err != nil {
		return err
	}
	return s.playLocked()
}

// Seek moves within the loaded track.
func (s *session) Seek(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Idle {
		return ErrNoTrack
	}
	if err := s.player.Seek(pos); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// SetContext selects the playlist feeding PlayTrack's queue construction.
func (s *session) SetContext(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contextIDs = make([]string, len(ids))
	copy(s.contextIDs, ids)
}

// ClearContext reverts PlayTrack to whole-library queues.
func (s *session) ClearContext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contextIDs = nil
}

// handleTrackFinished runs the natural-end transition. A completion whose
// generation no longer matches belongs to a superseded load and is dropped.
func (s *session) handleTrackFinished(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.loadGen {
		return
	}

	switch {
	case s.repeat == RepeatOne:
		if err := s.player.Seek(0); err != nil {
			s.log.Error().Err(err).Msg("repeat-one seek failed")
		}
		if err := s.playLocked(); err != nil {
			s.log.Error().Err(err).Msg("repeat-one restart failed")
		}
	case s.repeat == RepeatAll || !s.queue.IsEmpty():
		if err := s.advanceLocked(playlist.Forward); err != nil {
			s.log.Error().Err(err).Msg("auto-advance failed")
		}
	default:
		// End of a queueless track: stay Loaded at end-of-track.
		s.player.Pause()
		if s.state == Playing {
			s.state = Loaded
			s.broadcastState(StateChange{Previous: Playing, Current: Loaded})
		}
	}
}

// SetVolume clamps v to [0, 1] and applies it immediately.
func (s *session) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.volume = v
	s.player.SetVolume(v)
	s.broadcastVolume(VolumeChange{Volume: v})
}

// Volume returns the current volume level.
func (s *session) Volume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volume
}

// ToggleShuffle flips shuffle mode and returns the new value.
func (s *session) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffled = !s.shuffled
	s.broadcastMode(ModeChange{Repeat: s.repeat, Shuffle: s.shuffled})
	return s.shuffled
}

// Shuffle returns whether shuffle mode is on.
func (s *session) Shuffle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shuffled
}

// SetRepeatMode sets the repeat mode.
func (s *session) SetRepeatMode(mode RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat = mode
	s.broadcastMode(ModeChange{Repeat: s.repeat, Shuffle: s.shuffled})
}

// RepeatMode returns the current repeat mode.
func (s *session) RepeatMode() RepeatMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repeat
}

// CycleRepeatMode steps off → all → one → off and returns the new mode.
func (s *session) CycleRepeatMode() RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.repeat {
	case RepeatOff:
		s.repeat = RepeatAll
	case RepeatAll:
		s.repeat = RepeatOne
	default:
		s.repeat = RepeatOff
	}
	s.broadcastMode(ModeChange{Repeat: s.repeat, Shuffle: s.shuffled})
	return s.repeat
}

// State returns the session state.
func (s *session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentTrackID returns the current track ID ("" when Idle).
func (s *session) CurrentTrackID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// QueueIDs returns a copy of the queued track IDs.
func (s *session) QueueIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.IDs()
}

// QueueIndex returns the current queue position (-1 if none).
func (s *session) QueueIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Position()
}

// HistoryIDs returns the recently-played track IDs, most-recent-first.
func (s *session) HistoryIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.IDs()
}

// Snapshot returns the full read-only state in one step.
func (s *session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		State:          s.state,
		CurrentTrackID: s.currentID,
		QueueIDs:       s.queue.IDs(),
		QueueIndex:     s.queue.Position(),
		Shuffled:       s.shuffled,
		Repeat:         s.repeat,
		Volume:         s.volume,
		Position:       s.player.Position(),
		Duration:       s.player.Duration(),
	}
}

// Subscribe creates a new event subscription.
func (s *session) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close shuts down the session and releases the player.
func (s *session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.loadGen++ // invalidate in-flight completions
	err := s.player.Close()
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()
	return err
}

func (s *session) queueIndexOf(id string) int {
	if current, ok := s.queue.CurrentID(); ok && current == id {
		return s.queue.Position()
	}
	return -1
}

// Broadcast helpers fan events out to every subscription.

func (s *session) broadcastState(e StateChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(e)
	}
}

func (s *session) broadcastTrack(e TrackChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendTrack(e)
	}
}

func (s *session) broadcastQueue(e QueueChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendQueue(e)
	}
}

func (s *session) broadcastMode(e ModeChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendMode(e)
	}
}

func (s *session) broadcastVolume(e VolumeChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendVolume(e)
	}
}

func (s *session) broadcastError(e ErrorEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}
