// Package memory provides map-backed implementations of every repository
// port. It is the default store when no MongoDB URI is configured and the
// reference for the store semantics: monotonic process-lifetime ids, cascade
// delete of junction rows, upsert play history.
package memory

import (
	"sync"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// Store holds all entity maps behind one mutex. Every repository call is a
// single atomic unit of work; there are no multi-call transactions.
type Store struct {
	mu sync.Mutex

	users          map[int64]*domain.User
	tracks         map[int64]*domain.Track
	playlists      map[int64]*domain.Playlist
	playlistTracks map[int64]*domain.PlaylistTrack
	recentPlays    map[int64]*domain.RecentlyPlayed
	subscriptions  map[int64]*domain.PremiumSubscription

	nextUserID          int64
	nextTrackID         int64
	nextPlaylistID      int64
	nextPlaylistTrackID int64
	nextRecentID        int64
	nextSubscriptionID  int64
}

// NewStore returns an empty Store. Ids start at 1 and are never reused.
func NewStore() *Store {
	return &Store{
		users:          make(map[int64]*domain.User),
		tracks:         make(map[int64]*domain.Track),
		playlists:      make(map[int64]*domain.Playlist),
		playlistTracks: make(map[int64]*domain.PlaylistTrack),
		recentPlays:    make(map[int64]*domain.RecentlyPlayed),
		subscriptions:  make(map[int64]*domain.PremiumSubscription),

		nextUserID:          1,
		nextTrackID:         1,
		nextPlaylistID:      1,
		nextPlaylistTrackID: 1,
		nextRecentID:        1,
		nextSubscriptionID:  1,
	}
}
