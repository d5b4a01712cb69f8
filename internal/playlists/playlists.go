package playlists

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrPlaylistExists   = errors.New("playlist already exists")
	ErrPlaylistNotFound = errors.New("playlist not found")
)

// Playlist is a named, ordered collection of track IDs. Duplicate IDs are
// allowed; existence in the library is re-checked lazily at playback time.
type Playlist struct {
	Name     string
	TrackIDs []string
}

// Store is the durable preference store for playlists.
type Store interface {
	LoadPlaylists() ([]Playlist, error)
	SavePlaylists(lists []Playlist) error
}

// Collection holds all named playlists, in creation order.
type Collection struct {
	store Store
	lists []Playlist
}

// LoadCollection reads the persisted playlists from the store.
func LoadCollection(store Store) (*Collection, error) {
	c := &Collection{store: store}
	if store == nil {
		return c, nil
	}
	lists, err := store.LoadPlaylists()
	if err != nil {
		return nil, fmt.Errorf("load playlists: %w", err)
	}
	c.lists = lists
	return c, nil
}

// Create adds an empty playlist with the given name.
func (c *Collection) Create(name string) error {
	if c.find(name) != nil {
		return ErrPlaylistExists
	}
	c.lists = append(c.lists, Playlist{Name: name})
	return c.save()
}

// Delete removes the named playlist.
func (c *Collection) Delete(name string) error {
	for i, p := range c.lists {
		if p.Name == name {
			c.lists = append(c.lists[:i], c.lists[i+1:]...)
			return c.save()
		}
	}
	return ErrPlaylistNotFound
}

// AddTrack appends a track ID to the named playlist.
func (c *Collection) AddTrack(name, trackID string) error {
	p := c.find(name)
	if p == nil {
		return ErrPlaylistNotFound
	}
	p.TrackIDs = append(p.TrackIDs, trackID)
	return c.save()
}

// RemoveTrack removes the first occurrence of the track ID from the named
// playlist. Removing an absent ID is a no-op.
func (c *Collection) RemoveTrack(name, trackID string) error {
	p := c.find(name)
	if p == nil {
		return ErrPlaylistNotFound
	}
	for i, id := range p.TrackIDs {
		if id == trackID {
			p.TrackIDs = append(p.TrackIDs[:i], p.TrackIDs[i+1:]...)
			break
		}
	}
	return c.save()
}

// Get returns a copy of the named playlist.
func (c *Collection) Get(name string) (Playlist, bool) {
	p := c.find(name)
	if p == nil {
		return Playlist{}, false
	}
	out := Playlist{Name: p.Name, TrackIDs: make([]string, len(p.TrackIDs))}
	copy(out.TrackIDs, p.TrackIDs)
	return out, true
}

// All returns copies of all playlists in creation order.
func (c *Collection) All() []Playlist {
	out := make([]Playlist, len(c.lists))
	for i, p := range c.lists {
		out[i] = Playlist{Name: p.Name, TrackIDs: make([]string, len(p.TrackIDs))}
		copy(out[i].TrackIDs, p.TrackIDs)
	}
	return out
}

func (c *Collection) find(name string) *Playlist {
	for i := range c.lists {
		if c.lists[i].Name == name {
			return &c.lists[i]
		}
	}
	return nil
}

func (c *Collection) save() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.SavePlaylists(c.lists); err != nil {
		return fmt.Errorf("save playlists: %w", err)
	}
	return nil
}
