package store

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS tracks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			genre TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			mime_type TEXT NOT NULL,
			payload BLOB NOT NULL,
			date_added INTEGER NOT NULL,
			play_count INTEGER NOT NULL DEFAULT 0,
			last_played INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_tracks_date_added ON tracks(date_added);

		CREATE TABLE IF NOT EXISTS favorites (
			track_id TEXT PRIMARY KEY REFERENCES tracks(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS playlists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlist_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			track_id TEXT NOT NULL,
			UNIQUE(playlist_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_playlist_tracks_playlist ON playlist_tracks(playlist_id, position);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
