package domain

import "time"

// Playlist is a named, ordered collection of tracks owned by one user.
type Playlist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	CoverArt  string    `json:"coverArt,omitempty"`
	IsPublic  bool      `json:"isPublic"`
}

// PlaylistTrack is a junction row linking one playlist to one track at an
// integer position. Positions are caller-supplied; the store never renumbers
// or compacts them, and ties sort in undefined order.
type PlaylistTrack struct {
	ID         int64 `json:"id"`
	PlaylistID int64 `json:"playlistId"`
	TrackID    int64 `json:"trackId"`
	Position   int   `json:"position"`
}
