package ports

import (
	"context"
	"time"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// CreateTrackInput carries the fields for inserting a track. Zero-valued
// optional fields are stored as absent; IsPremium defaults to false and
// Quality to "standard".
type CreateTrackInput struct {
	Title     string
	Artist    string
	Album     string
	Duration  int
	FilePath  string
	Genre     string
	Year      string
	AlbumArt  string
	UserID    int64
	IsPremium bool
	Quality   string
}

// CreatePlaylistInput carries the fields for inserting a playlist.
type CreatePlaylistInput struct {
	Name     string
	UserID   int64
	CoverArt string
	IsPublic *bool // defaults to true when nil
}

// PlaylistEntry is a junction row joined with its track at read time.
// Track is nil when the referenced track has been deleted; the service
// filters such rows out of its results.
type PlaylistEntry struct {
	domain.PlaylistTrack
	Track *domain.Track `json:"track"`
}

// RecentEntry is a play-history row joined with its track at read time.
type RecentEntry struct {
	domain.RecentlyPlayed
	Track *domain.Track `json:"track"`
}

// LibraryService is the CRUD and query surface over tracks, playlists and
// play history. Joins are performed at read time, never stored.
type LibraryService interface {
	CreateTrack(ctx context.Context, input CreateTrackInput) (*domain.Track, error)
	Track(ctx context.Context, id int64) (*domain.Track, error)
	Tracks(ctx context.Context, userID int64) ([]*domain.Track, error)
	TracksByArtist(ctx context.Context, artist string, userID int64) ([]*domain.Track, error)
	TracksByAlbum(ctx context.Context, album string, userID int64) ([]*domain.Track, error)
	TracksByGenre(ctx context.Context, genre string, userID int64) ([]*domain.Track, error)
	PremiumTracks(ctx context.Context) ([]*domain.Track, error)
	UpdateTrack(ctx context.Context, id int64, upd TrackUpdate) (*domain.Track, error)
	DeleteTrack(ctx context.Context, id int64) error

	CreatePlaylist(ctx context.Context, input CreatePlaylistInput) (*domain.Playlist, error)
	Playlist(ctx context.Context, id int64) (*domain.Playlist, error)
	Playlists(ctx context.Context, userID int64) ([]*domain.Playlist, error)
	PublicPlaylists(ctx context.Context) ([]*domain.Playlist, error)
	UpdatePlaylist(ctx context.Context, id int64, upd PlaylistUpdate) (*domain.Playlist, error)
	DeletePlaylist(ctx context.Context, id int64) error

	AddTrackToPlaylist(ctx context.Context, playlistID, trackID int64, position int) (*domain.PlaylistTrack, error)
	PlaylistTracks(ctx context.Context, playlistID int64) ([]*PlaylistEntry, error)
	RemoveTrackFromPlaylist(ctx context.Context, playlistID, trackID int64) error
	MoveTrack(ctx context.Context, rowID int64, position int) (*domain.PlaylistTrack, error)

	RecordPlay(ctx context.Context, userID, trackID int64, playedAt time.Time) (*domain.RecentlyPlayed, error)
	RecentlyPlayed(ctx context.Context, userID int64, limit int) ([]*RecentEntry, error)
}
