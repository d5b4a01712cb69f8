package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

// pcmWAV builds a playable 16-bit mono PCM WAV payload of the given length.
func pcmWAV(d time.Duration) []byte {
	const rate = 8000
	samples := int(d.Seconds() * rate)
	dataLen := samples * 2

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(rate))
	binary.Write(&buf, binary.LittleEndian, uint32(rate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(make([]byte, dataLen))
	return buf.Bytes()
}

func TestState_String(t *testing.T) {
	cases := []struct {
		state State
		want  string
	}{
		{Stopped, "Stopped"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{State(42), "Unknown"},
	}
	for _, c := range cases {
		if got := c.state.String(); got != c.want {
			t.Errorf("State(%d).String() = %q, want %q", c.state, got, c.want)
		}
	}
}

func TestLevelToVolume(t *testing.T) {
	cases := []struct {
		level float64
		want  float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-3, -10},
		{2, 0},
	}
	for _, c := range cases {
		if got := levelToVolume(c.level); got != c.want {
			t.Errorf("levelToVolume(%v) = %v, want %v", c.level, got, c.want)
		}
	}
}

func TestDecode_UnsupportedMIME(t *testing.T) {
	_, _, err := decode([]byte{0x00}, "video/mp4")

	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("decode error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestProbeDuration(t *testing.T) {
	got, err := ProbeDuration(pcmWAV(time.Second), "audio/wav")

	if err != nil {
		t.Fatalf("ProbeDuration: %v", err)
	}
	if got != time.Second {
		t.Errorf("ProbeDuration() = %v, want 1s", got)
	}
}

func TestProbeDuration_Undecodable(t *testing.T) {
	if _, err := ProbeDuration([]byte{0x00, 0x01}, "audio/wav"); err == nil {
		t.Error("ProbeDuration on garbage should fail")
	}

	if _, err := ProbeDuration(nil, "video/mp4"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ProbeDuration error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestMock_PlayWithoutSource(t *testing.T) {
	m := NewMock()

	if err := m.Play(); !errors.Is(err, ErrNoSource) {
		t.Errorf("Play() = %v, want ErrNoSource", err)
	}
}

func TestMock_Lifecycle(t *testing.T) {
	m := NewMock()

	if err := m.BindSource(nil, "audio/mpeg"); err != nil {
		t.Fatalf("BindSource: %v", err)
	}
	if err := m.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if m.State() != Playing {
		t.Errorf("State() = %v, want Playing", m.State())
	}

	m.Pause()
	if m.State() != Paused {
		t.Errorf("State() = %v, want Paused", m.State())
	}
}
