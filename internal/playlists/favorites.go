// Package playlists manages the persisted collections: the favorites set
// and named playlists. Both keep an in-memory view and write the full
// collection back to the durable store on every mutation.
package playlists

import (
	"fmt"
	"sort"
)

// FavoritesStore is the durable preference store for the favorites set.
type FavoritesStore interface {
	LoadFavorites() ([]string, error)
	SaveFavorites(ids []string) error
}

// Favorites is the set of favorited track IDs.
type Favorites struct {
	store FavoritesStore
	set   map[string]bool

	// OnChange, when set, is called after every toggle with the affected
	// track ID. The rendering layer re-queries by ID; it never receives
	// track data here.
	OnChange func(id string, favorited bool)
}

// LoadFavorites reads the persisted set from the store.
func LoadFavorites(store FavoritesStore) (*Favorites, error) {
	f := &Favorites{store: store, set: make(map[string]bool)}
	if store == nil {
		return f, nil
	}
	ids, err := store.LoadFavorites()
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	for _, id := range ids {
		f.set[id] = true
	}
	return f, nil
}

// Toggle flips membership for the track and persists the full set
// immediately. Returns the new status (true = now favorited). On a
// persistence failure the in-memory flip is kept and the error reported;
// the next successful save repairs the store.
func (f *Favorites) Toggle(id string) (bool, error) {
	favorited := !f.set[id]
	if favorited {
		f.set[id] = true
	} else {
		delete(f.set, id)
	}

	if f.OnChange != nil {
		f.OnChange(id, favorited)
	}

	if f.store != nil {
		if err := f.store.SaveFavorites(f.IDs()); err != nil {
			return favorited, fmt.Errorf("save favorites: %w", err)
		}
	}
	return favorited, nil
}

// IsFavorite reports whether the track is favorited.
func (f *Favorites) IsFavorite(id string) bool {
	return f.set[id]
}

// IDs returns the favorited track IDs, sorted so persisted writes are
// deterministic.
func (f *Favorites) IDs() []string {
	ids := make([]string, 0, len(f.set))
	for id := range f.set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of favorited tracks.
func (f *Favorites) Len() int {
	return len(f.set)
}
