// Package ingest turns user-supplied audio files into track records:
// embedded tags when present, a filename parse as fallback.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"

	"chime/internal/library"
	"chime/internal/player"
)

// ErrUnsupportedPayload marks a payload the player cannot decode. The
// caller skips the item and reports it; ingestion of other items continues.
var ErrUnsupportedPayload = errors.New("unsupported audio payload")

var mimeTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
}

// FromFile reads an audio file into a track record. The returned track has
// no ID; the repository assigns one on Add.
func FromFile(path string) (*library.Track, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return FromPayload(filepath.Base(path), payload)
}

// FromPayload builds a track record from raw bytes. filename drives format
// detection and the metadata fallback.
func FromPayload(filename string, payload []byte) (*library.Track, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mimeType, ok := mimeTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPayload, ext)
	}

	t := &library.Track{
		Payload:   payload,
		MIMEType:  mimeType,
		DateAdded: time.Now(),
	}
	t.Artist, t.Name = parseFilename(filename)

	// Duration comes from the decoder, not the tags. A payload that does
	// not decode keeps zero here and surfaces its real error at bind time.
	if d, err := player.ProbeDuration(payload, mimeType); err == nil {
		t.Duration = d
	}

	// Embedded tags win over the filename parse, field by field.
	if m, err := tag.ReadFrom(bytes.NewReader(payload)); err == nil {
		if m.Title() != "" {
			t.Name = m.Title()
		}
		if m.Artist() != "" {
			t.Artist = m.Artist()
		}
		t.Album = m.Album()
		t.Genre = m.Genre()
	}
	return t, nil
}

// parseFilename extracts a provisional "Artist - Title" pair from the
// filename, with the whole stem as title when there is no separator.
func parseFilename(filename string) (artist, title string) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if artist, title, ok := strings.Cut(stem, " - "); ok {
		return strings.TrimSpace(artist), strings.TrimSpace(title)
	}
	return "", strings.TrimSpace(stem)
}
