package player

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Errors
var (
	ErrNoSource          = errors.New("no audio source bound")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

const resampleQuality = 4

var (
	speakerInitialized bool
	speakerRate        beep.SampleRate
)

// Beep plays in-memory audio payloads through the speaker.
type Beep struct {
	state       State
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	volumeLevel float64
	onFinished  func()

	// queued is true while the decoded pipeline sits on the speaker.
	// It drops to false when the source drains; Play then re-queues.
	// Reads and writes are synchronized by the speaker lock, which the
	// drain callback already holds.
	queued bool
}

// NewBeep creates a player with full volume.
func NewBeep() *Beep {
	return &Beep{state: Stopped, volumeLevel: 1}
}

// BindSource decodes the payload and queues it on the speaker, paused.
// Any previously bound source is released first.
func (p *Beep) BindSource(payload []byte, mimeType string) error {
	p.release()

	streamer, format, err := decode(payload, mimeType)
	if err != nil {
		return err
	}

	if !speakerInitialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		speakerInitialized = true
		speakerRate = format.SampleRate
	}

	p.streamer = streamer
	p.format = format
	p.enqueue(true)
	p.state = Stopped
	return nil
}

// enqueue builds the ctrl/volume pipeline around the bound streamer and
// hands it to the speaker.
func (p *Beep) enqueue(paused bool) {
	var src beep.Streamer = p.streamer
	if p.format.SampleRate != speakerRate {
		src = beep.Resample(resampleQuality, p.format.SampleRate, speakerRate, p.streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: src, Paused: paused}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.volumeLevel <= 0,
	}
	p.queued = true

	fn := p.onFinished
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Runs on the speaker's mixing goroutine with the speaker
		// lock held; flip queued here and hand the event off so
		// listeners can touch the player freely.
		p.queued = false
		if fn != nil {
			go fn()
		}
	})))
}

// Play starts or resumes the bound source. A source that already drained
// is re-queued, so Seek(0)+Play replays it.
func (p *Beep) Play() error {
	if p.streamer == nil || p.ctrl == nil {
		return ErrNoSource
	}
	speaker.Lock()
	queued := p.queued
	speaker.Unlock()

	if !queued {
		p.enqueue(false)
	} else {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
	}
	p.state = Playing
	return nil
}

// Pause stops output, preserving position.
func (p *Beep) Pause() {
	if p.ctrl == nil || p.state != Playing {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Seek moves the bound source to the given position.
func (p *Beep) Seek(pos time.Duration) error {
	if p.streamer == nil {
		return ErrNoSource
	}
	speaker.Lock()
	defer speaker.Unlock()
	sample := p.format.SampleRate.N(pos)
	if sample < 0 {
		sample = 0
	}
	if sample > p.streamer.Len() {
		sample = p.streamer.Len()
	}
	return p.streamer.Seek(sample)
}

// Position returns the playback position in the bound source.
func (p *Beep) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

// Duration returns the total length of the bound source.
func (p *Beep) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// State returns the player state.
func (p *Beep) State() State {
	return p.state
}

// SetVolume applies a clamped level in [0, 1] to the live volume effect.
func (p *Beep) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	p.volumeLevel = level

	if p.volume != nil {
		speaker.Lock()
		p.volume.Volume = levelToVolume(level)
		p.volume.Silent = level <= 0
		speaker.Unlock()
	}
}

// OnFinished registers the end-of-track callback. It applies to sources
// bound after the call.
func (p *Beep) OnFinished(fn func()) {
	p.onFinished = fn
}

// Close releases the bound source. The speaker itself is process-global
// and stays initialized.
func (p *Beep) Close() error {
	p.release()
	return nil
}

func (p *Beep) release() {
	if p.streamer == nil {
		return
	}
	speaker.Clear()
	p.streamer.Close()
	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
	p.queued = false
	p.state = Stopped
}

// ProbeDuration decodes a payload far enough to report its total length.
// Audio tags rarely carry duration, so ingestion derives it here.
func ProbeDuration(payload []byte, mimeType string) (time.Duration, error) {
	streamer, format, err := decode(payload, mimeType)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}

func decode(payload []byte, mimeType string) (beep.StreamSeekCloser, beep.Format, error) {
	rc := io.NopCloser(bytes.NewReader(payload))
	switch mimeType {
	case "audio/mpeg", "audio/mp3":
		return mp3.Decode(rc)
	case "audio/flac", "audio/x-flac":
		return flac.Decode(rc)
	case "audio/wav", "audio/x-wav", "audio/wave":
		return wav.Decode(rc)
	case "audio/ogg", "application/ogg":
		return vorbis.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
}

// levelToVolume converts a 0.0-1.0 level to beep's exponential Volume
// value: 1.0 -> 0 (unchanged), 0.5 -> -1 (half), 0.25 -> -2.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
