package player

import "time"

// Mock is a test double for the audio primitive.
type Mock struct {
	state       State
	bound       bool
	position    time.Duration
	duration    time.Duration
	volume      float64
	onFinished  func()
	bindErr     error
	playErr     error
	bindCalls   []string // mime types, in order
	seekCalls   []time.Duration
	volumeCalls []float64
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{state: Stopped, volume: 1}
}

func (m *Mock) BindSource(_ []byte, mimeType string) error {
	m.bindCalls = append(m.bindCalls, mimeType)
	if m.bindErr != nil {
		return m.bindErr
	}
	m.bound = true
	m.state = Stopped
	m.position = 0
	return nil
}

func (m *Mock) Play() error {
	if !m.bound {
		return ErrNoSource
	}
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Pause() {
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Seek(pos time.Duration) error {
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
	return nil
}

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) State() State { return m.state }

func (m *Mock) SetVolume(level float64) {
	m.volume = level
	m.volumeCalls = append(m.volumeCalls, level)
}

func (m *Mock) OnFinished(fn func()) { m.onFinished = fn }

func (m *Mock) Close() error {
	m.bound = false
	m.state = Stopped
	return nil
}

// Test helpers

func (m *Mock) SetBindError(err error) { m.bindErr = err }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) BindCalls() []string { return m.bindCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

func (m *Mock) VolumeCalls() []float64 { return m.volumeCalls }

func (m *Mock) Volume() float64 { return m.volume }

// FinishedCallback returns the currently registered end-of-track callback,
// letting tests replay a superseded completion.
func (m *Mock) FinishedCallback() func() { return m.onFinished }

// SimulateFinished invokes the registered end-of-track callback, as if the
// bound source had drained.
func (m *Mock) SimulateFinished() {
	m.state = Stopped
	if m.onFinished != nil {
		m.onFinished()
	}
}
