// Package library holds the in-memory track repository and the query
// layer (search, recommendations) that every other component resolves
// tracks through. Other components hold track IDs, never Track copies.
package library

import "time"

// Track represents a single audio item with metadata and payload.
type Track struct {
	ID       string
	Name     string
	Artist   string
	Album    string
	Genre    string
	Duration time.Duration

	// Payload is the immutable audio data. MIMEType tells the player
	// which decoder to use.
	Payload  []byte
	MIMEType string

	DateAdded  time.Time
	PlayCount  int
	LastPlayed *time.Time
}
