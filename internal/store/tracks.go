package store

import (
	"database/sql"
	"time"

	dbutil "chime/internal/db"
	"chime/internal/library"
)

// Verify the store satisfies its collaborator contracts at compile time.
var (
	_ library.TrackWriter = (*Store)(nil)
)

// AddTrack persists a new track record, payload included.
func (s *Store) AddTrack(t *library.Track) error {
	var lastPlayed any
	if t.LastPlayed != nil {
		lastPlayed = t.LastPlayed.UnixMilli()
	}
	_, err := s.db.Exec(`
		INSERT INTO tracks (id, name, artist, album, genre, duration_ms, mime_type, payload, date_added, play_count, last_played)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Artist, t.Album, t.Genre, t.Duration.Milliseconds(),
		t.MIMEType, t.Payload, t.DateAdded.UnixMilli(), t.PlayCount, lastPlayed)
	return err
}

// AllTracks loads every track record in insertion (date_added, rowid) order.
func (s *Store) AllTracks() ([]*library.Track, error) {
	rows, err := s.db.Query(`
		SELECT id, name, artist, album, genre, duration_ms, mime_type, payload, date_added, play_count, last_played
		FROM tracks
		ORDER BY date_added, rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []*library.Track
	for rows.Next() {
		var t library.Track
		var genre sql.NullString
		var durationMS, dateAdded int64
		var lastPlayed sql.NullInt64

		err := rows.Scan(&t.ID, &t.Name, &t.Artist, &t.Album, &genre,
			&durationMS, &t.MIMEType, &t.Payload, &dateAdded, &t.PlayCount, &lastPlayed)
		if err != nil {
			return nil, err
		}

		t.Genre = dbutil.NullStringValue(genre)
		t.Duration = time.Duration(durationMS) * time.Millisecond
		t.DateAdded = time.UnixMilli(dateAdded)
		if lastPlayed.Valid {
			lp := time.UnixMilli(lastPlayed.Int64)
			t.LastPlayed = &lp
		}
		tracks = append(tracks, &t)
	}
	return tracks, rows.Err()
}

// UpdatePlayStats persists play bookkeeping after a track loads for
// playback.
func (s *Store) UpdatePlayStats(id string, playCount int, lastPlayed time.Time) error {
	_, err := s.db.Exec(`
		UPDATE tracks SET play_count = ?, last_played = ? WHERE id = ?
	`, playCount, lastPlayed.UnixMilli(), id)
	return err
}
