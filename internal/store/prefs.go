package store

import (
	"database/sql"

	dbutil "chime/internal/db"
	"chime/internal/playlists"
)

// Verify the store satisfies the preference contracts at compile time.
var (
	_ playlists.FavoritesStore = (*Store)(nil)
	_ playlists.Store          = (*Store)(nil)
)

// LoadFavorites returns the persisted favorites set.
func (s *Store) LoadFavorites() ([]string, error) {
	rows, err := s.db.Query(`SELECT track_id FROM favorites ORDER BY track_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SaveFavorites replaces the persisted favorites set.
func (s *Store) SaveFavorites(ids []string) error {
	return dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM favorites`); err != nil {
			return err
		}
		stmt, err := tx.Prepare(`INSERT INTO favorites (track_id) VALUES (?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, id := range ids {
			if _, err := stmt.Exec(id); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadPlaylists returns all persisted playlists in creation order.
func (s *Store) LoadPlaylists() ([]playlists.Playlist, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.name
		FROM playlists p
		ORDER BY p.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []playlists.Playlist
	var rowIDs []int64
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		rowIDs = append(rowIDs, id)
		lists = append(lists, playlists.Playlist{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, rowID := range rowIDs {
		trackRows, err := s.db.Query(`
			SELECT track_id FROM playlist_tracks
			WHERE playlist_id = ?
			ORDER BY position
		`, rowID)
		if err != nil {
			return nil, err
		}
		for trackRows.Next() {
			var trackID string
			if err := trackRows.Scan(&trackID); err != nil {
				trackRows.Close()
				return nil, err
			}
			lists[i].TrackIDs = append(lists[i].TrackIDs, trackID)
		}
		if err := trackRows.Err(); err != nil {
			trackRows.Close()
			return nil, err
		}
		trackRows.Close()
	}
	return lists, nil
}

// SavePlaylists replaces all persisted playlists.
func (s *Store) SavePlaylists(lists []playlists.Playlist) error {
	return dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM playlist_tracks`); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM playlists`); err != nil {
			return err
		}

		insertList, err := tx.Prepare(`INSERT INTO playlists (name, position) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer insertList.Close()

		insertTrack, err := tx.Prepare(`
			INSERT INTO playlist_tracks (playlist_id, position, track_id) VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer insertTrack.Close()

		for i, list := range lists {
			res, err := insertList.Exec(list.Name, i)
			if err != nil {
				return err
			}
			listID, err := res.LastInsertId()
			if err != nil {
				return err
			}
			for pos, trackID := range list.TrackIDs {
				if _, err := insertTrack.Exec(listID, pos, trackID); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
